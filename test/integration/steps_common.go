package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

const scenarioPassword = "correct-horse-battery"

type actor struct {
	ID    string
	Email string
	Token string
}

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string

	actors       map[string]*actor
	projects     map[string]string
	workspaces   map[string]string
	applications map[string]string
	invitations  map[string]string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:           tc,
		actors:       make(map[string]*actor),
		projects:     make(map[string]string),
		workspaces:   make(map[string]string),
		applications: make(map[string]string),
		invitations:  make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.tc.Reset()
	})

	// Background steps
	sc.Step(`^a Vidzel server is running$`, s.aVidzelServerIsRunning)
	sc.Step(`^an? (volunteer|student|mentor|organization) "([^"]*)" has signed up$`, s.anActorHasSignedUp)

	// Authentication steps
	sc.Step(`^I sign up as an? (\w+) named "([^"]*)" with email "([^"]*)"$`, s.iSignUp)
	sc.Step(`^I log in with email "([^"]*)" and password "([^"]*)"$`, s.iLogIn)
	sc.Step(`^I request whoami as "([^"]*)"$`, s.iRequestWhoamiAs)
	sc.Step(`^I request whoami without a token$`, s.iRequestWhoamiWithoutAToken)
	sc.Step(`^I should receive a valid token$`, s.iShouldReceiveAValidToken)

	// Project steps
	sc.Step(`^"([^"]*)" publishes a project titled "([^"]*)"$`, s.publishesAProject)
	sc.Step(`^"([^"]*)" saves a draft project titled "([^"]*)"$`, s.savesADraftProject)
	sc.Step(`^"([^"]*)" views the project "([^"]*)"$`, s.viewsTheProject)
	sc.Step(`^"([^"]*)" completes the project "([^"]*)"$`, s.completesTheProject)

	// Application and invitation steps
	sc.Step(`^"([^"]*)" applies to the project "([^"]*)"$`, s.appliesToTheProject)
	sc.Step(`^"([^"]*)" (accepts|rejects) the application from "([^"]*)" to "([^"]*)"$`, s.decidesTheApplication)
	sc.Step(`^"([^"]*)" invites "([^"]*)" to the project "([^"]*)"$`, s.invitesToTheProject)
	sc.Step(`^"([^"]*)" (accepts|declines) the invitation to "([^"]*)"$`, s.respondsToTheInvitation)

	// Workspace steps
	sc.Step(`^"([^"]*)" posts the message "([^"]*)" in the workspace for "([^"]*)"$`, s.postsAMessage)
	sc.Step(`^"([^"]*)" lists the messages in the workspace for "([^"]*)"$`, s.listsTheMessages)
	sc.Step(`^"([^"]*)" requests the certificate for "([^"]*)"$`, s.requestsTheCertificate)
	sc.Step(`^"([^"]*)" should have (\d+) unread notifications?$`, s.shouldHaveUnreadNotifications)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, s.theResponseShouldContain)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, s.theResponseFieldShouldBe)
}

// Background steps

func (s *StepsContext) aVidzelServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) anActorHasSignedUp(role, name string) error {
	if err := s.iSignUp(role, name, emailFor(name)); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("signup for %s failed with %d: %s", name, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func emailFor(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.org"
}

// Authentication steps

func (s *StepsContext) iSignUp(role, name, email string) error {
	if err := s.do("POST", "/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": scenarioPassword,
		"role":     role,
	}); err != nil {
		return err
	}
	return s.rememberActor(name)
}

func (s *StepsContext) iLogIn(email, password string) error {
	return s.do("POST", "/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (s *StepsContext) rememberActor(name string) error {
	if s.response.StatusCode != http.StatusCreated && s.response.StatusCode != http.StatusOK {
		return nil
	}
	var auth struct {
		Token   string `json:"token"`
		Account struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"account"`
	}
	if err := json.Unmarshal(s.responseBody, &auth); err != nil {
		return fmt.Errorf("failed to decode auth response: %w", err)
	}
	s.authToken = auth.Token
	s.actors[name] = &actor{ID: auth.Account.ID, Email: auth.Account.Email, Token: auth.Token}
	return nil
}

func (s *StepsContext) iRequestWhoamiAs(name string) error {
	a, err := s.actor(name)
	if err != nil {
		return err
	}
	return s.do("GET", "/whoami", a.Token, nil)
}

func (s *StepsContext) iRequestWhoamiWithoutAToken() error {
	return s.do("GET", "/whoami", "", nil)
}

func (s *StepsContext) iShouldReceiveAValidToken() error {
	var auth struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(s.responseBody, &auth); err != nil {
		return fmt.Errorf("failed to decode auth response: %w", err)
	}
	if strings.Count(auth.Token, ".") != 2 {
		return fmt.Errorf("expected a JWT, got %q", auth.Token)
	}
	s.authToken = auth.Token
	return s.do("GET", "/whoami", auth.Token, nil)
}

// Project steps

func (s *StepsContext) publishesAProject(org, title string) error {
	return s.createProject(org, title, "active")
}

func (s *StepsContext) savesADraftProject(org, title string) error {
	return s.createProject(org, title, "draft")
}

func (s *StepsContext) createProject(org, title, status string) error {
	a, err := s.actor(org)
	if err != nil {
		return err
	}
	if err := s.do("POST", "/projects", a.Token, map[string]interface{}{
		"title":       title,
		"description": "Integration project " + title,
		"tasks":       "Research, outreach",
		"status":      status,
		"causeAreas":  []string{"Environment"},
		"languages":   []string{"English"},
	}); err != nil {
		return err
	}
	if s.response.StatusCode == http.StatusCreated {
		id, err := s.field("id")
		if err != nil {
			return err
		}
		s.projects[title] = id
	}
	return nil
}

func (s *StepsContext) viewsTheProject(name, title string) error {
	a, projectID, err := s.actorAndProject(name, title)
	if err != nil {
		return err
	}
	return s.do("GET", "/projects/"+projectID, a.Token, nil)
}

func (s *StepsContext) completesTheProject(org, title string) error {
	a, projectID, err := s.actorAndProject(org, title)
	if err != nil {
		return err
	}
	return s.do("POST", "/projects/"+projectID+"/complete", a.Token, nil)
}

// Application and invitation steps

func (s *StepsContext) appliesToTheProject(name, title string) error {
	a, projectID, err := s.actorAndProject(name, title)
	if err != nil {
		return err
	}
	if err := s.do("POST", "/projects/"+projectID+"/applications", a.Token, map[string]string{
		"message": "I would like to help with " + title,
	}); err != nil {
		return err
	}
	if s.response.StatusCode == http.StatusCreated {
		id, err := s.field("id")
		if err != nil {
			return err
		}
		s.applications[name+"|"+title] = id
	}
	return nil
}

func (s *StepsContext) decidesTheApplication(org, decision, applicant, title string) error {
	a, err := s.actor(org)
	if err != nil {
		return err
	}
	appID, ok := s.applications[applicant+"|"+title]
	if !ok {
		return fmt.Errorf("%s has not applied to %q", applicant, title)
	}
	status := "accepted"
	if decision == "rejects" {
		status = "rejected"
	}
	if err := s.do("PATCH", "/applications/"+appID, a.Token, map[string]string{"status": status}); err != nil {
		return err
	}
	return s.rememberWorkspace(title, "workspace.id")
}

func (s *StepsContext) invitesToTheProject(org, invitee, title string) error {
	a, projectID, err := s.actorAndProject(org, title)
	if err != nil {
		return err
	}
	target, err := s.actor(invitee)
	if err != nil {
		return err
	}
	if err := s.do("POST", "/projects/"+projectID+"/invitations", a.Token, map[string]string{
		"userId": target.ID,
	}); err != nil {
		return err
	}
	if s.response.StatusCode == http.StatusCreated {
		id, err := s.field("id")
		if err != nil {
			return err
		}
		s.invitations[invitee+"|"+title] = id
	}
	return nil
}

func (s *StepsContext) respondsToTheInvitation(name, response, title string) error {
	a, err := s.actor(name)
	if err != nil {
		return err
	}
	invID, ok := s.invitations[name+"|"+title]
	if !ok {
		return fmt.Errorf("%s was not invited to %q", name, title)
	}
	action := "accept"
	if response == "declines" {
		action = "decline"
	}
	if err := s.do("POST", "/invitations/"+invID+"/"+action, a.Token, nil); err != nil {
		return err
	}
	if action == "accept" {
		return s.rememberWorkspace(title, "id")
	}
	return nil
}

// Workspace steps

func (s *StepsContext) postsAMessage(name, content, title string) error {
	a, wsID, err := s.actorAndWorkspace(name, title)
	if err != nil {
		return err
	}
	return s.do("POST", "/workspaces/"+wsID+"/messages", a.Token, map[string]string{"content": content})
}

func (s *StepsContext) listsTheMessages(name, title string) error {
	a, wsID, err := s.actorAndWorkspace(name, title)
	if err != nil {
		return err
	}
	return s.do("GET", "/workspaces/"+wsID+"/messages", a.Token, nil)
}

func (s *StepsContext) requestsTheCertificate(name, title string) error {
	a, projectID, err := s.actorAndProject(name, title)
	if err != nil {
		return err
	}
	return s.do("GET", "/certificates/"+projectID, a.Token, nil)
}

func (s *StepsContext) shouldHaveUnreadNotifications(name string, expected int) error {
	a, err := s.actor(name)
	if err != nil {
		return err
	}
	if err := s.do("GET", "/notifications", a.Token, nil); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return fmt.Errorf("listing notifications failed with %d: %s", s.response.StatusCode, s.responseBody)
	}
	var list struct {
		Unread int `json:"unread"`
	}
	if err := json.Unmarshal(s.responseBody, &list); err != nil {
		return fmt.Errorf("failed to decode notifications: %w", err)
	}
	if list.Unread != expected {
		return fmt.Errorf("expected %d unread notifications for %s, got %d", expected, name, list.Unread)
	}
	return nil
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expected int) error {
	if s.response == nil {
		return fmt.Errorf("no response received")
	}
	if s.response.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseShouldContain(expected string) error {
	if !bytes.Contains(s.responseBody, []byte(expected)) {
		return fmt.Errorf("expected response to contain %q, got: %s", expected, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseFieldShouldBe(path, expected string) error {
	actual, err := s.field(path)
	if err != nil {
		return err
	}
	if actual != expected {
		return fmt.Errorf("expected %s to be %q, got %q", path, expected, actual)
	}
	return nil
}

// Helpers

func (s *StepsContext) do(method, path, token string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.tc.Server.URL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

// field reads a dotted path of string values out of the last JSON response
func (s *StepsContext) field(path string) (string, error) {
	var current interface{}
	if err := json.Unmarshal(s.responseBody, &current); err != nil {
		return "", fmt.Errorf("response is not JSON: %w", err)
	}
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return "", fmt.Errorf("%s: not an object at %q", path, part)
		}
		if current, ok = obj[part]; !ok {
			return "", fmt.Errorf("%s: missing %q in %s", path, part, string(s.responseBody))
		}
	}
	switch v := current.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return fmt.Sprint(v), nil
	}
}

func (s *StepsContext) rememberWorkspace(title, path string) error {
	if s.response.StatusCode != http.StatusOK {
		return nil
	}
	id, err := s.field(path)
	if err != nil {
		// rejections carry no workspace
		return nil
	}
	if id != "" {
		s.workspaces[title] = id
	}
	return nil
}

func (s *StepsContext) actor(name string) (*actor, error) {
	a, ok := s.actors[name]
	if !ok {
		return nil, fmt.Errorf("unknown actor %q", name)
	}
	return a, nil
}

func (s *StepsContext) actorAndProject(name, title string) (*actor, string, error) {
	a, err := s.actor(name)
	if err != nil {
		return nil, "", err
	}
	id, ok := s.projects[title]
	if !ok {
		return nil, "", fmt.Errorf("unknown project %q", title)
	}
	return a, id, nil
}

func (s *StepsContext) actorAndWorkspace(name, title string) (*actor, string, error) {
	a, err := s.actor(name)
	if err != nil {
		return nil, "", err
	}
	id, ok := s.workspaces[title]
	if !ok {
		return nil, "", fmt.Errorf("no workspace opened for %q", title)
	}
	return a, id, nil
}
