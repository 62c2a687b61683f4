package seed

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vidzel/vidzel/pkg/model"
)

// Document is a seed file: accounts first, then the projects they own.
type Document struct {
	Accounts []Account `yaml:"accounts"`
	Projects []Project `yaml:"projects"`
}

// Account declares an account matched by email. Password may be left out,
// in which case new accounts get a generated one and existing accounts keep
// theirs.
type Account struct {
	Email    string   `yaml:"email"`
	Name     string   `yaml:"name"`
	Role     string   `yaml:"role"`
	Password string   `yaml:"password"`
	Profile  *Profile `yaml:"profile"`
}

type Profile struct {
	Location     string `yaml:"location"`
	Bio          string `yaml:"bio"`
	Skills       string `yaml:"skills"`
	Availability string `yaml:"availability"`
	Education    string `yaml:"education"`
	Experience   string `yaml:"experience"`
}

// Project declares a project matched by organization email and title.
type Project struct {
	Organization         string   `yaml:"organization"`
	Title                string   `yaml:"title"`
	Description          string   `yaml:"description"`
	Tasks                string   `yaml:"tasks"`
	Status               string   `yaml:"status"`
	CauseAreas           []string `yaml:"cause_areas"`
	CollaborationFormats []string `yaml:"collaboration_formats"`
	Languages            []string `yaml:"languages"`
	ProblemFocus         []string `yaml:"problem_focus"`
	OutcomeGoals         []string `yaml:"outcome_goals"`
	ResourcesNeeded      []string `yaml:"resources_needed"`
	Activities           []string `yaml:"activities"`
	Links                []string `yaml:"links"`
}

// Parse decodes and validates a seed document. Unknown keys are rejected so
// typos do not silently drop data.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("failed to parse seed document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks required fields, enum values and duplicates.
func (d *Document) Validate() error {
	emails := map[string]bool{}
	for i, a := range d.Accounts {
		email := model.NormalizeEmail(a.Email)
		if email == "" {
			return fmt.Errorf("accounts[%d]: email is required", i)
		}
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("accounts[%d] (%s): name is required", i, email)
		}
		if _, err := parseRole(a.Role); err != nil {
			return fmt.Errorf("accounts[%d] (%s): %w", i, email, err)
		}
		if emails[email] {
			return fmt.Errorf("accounts[%d]: duplicate email %s", i, email)
		}
		emails[email] = true
	}

	type projectKey struct{ org, title string }
	projects := map[projectKey]bool{}
	for i, p := range d.Projects {
		key := projectKey{model.NormalizeEmail(p.Organization), strings.TrimSpace(p.Title)}
		if key.org == "" {
			return fmt.Errorf("projects[%d]: organization is required", i)
		}
		if key.title == "" {
			return fmt.Errorf("projects[%d]: title is required", i)
		}
		if _, err := parseProjectStatus(p.Status); err != nil {
			return fmt.Errorf("projects[%d] (%s): %w", i, key.title, err)
		}
		if projects[key] {
			return fmt.Errorf("projects[%d]: duplicate project %q for %s", i, key.title, key.org)
		}
		projects[key] = true
	}
	return nil
}

// parseRole is strict, unlike signup which falls back to volunteer
func parseRole(s string) (model.Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return model.RoleVolunteer, nil
	}
	role, err := model.RoleString(s)
	if err != nil {
		return 0, fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

func parseProjectStatus(s string) (model.ProjectStatus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return model.ProjectStatusActive, nil
	}
	status, err := model.ProjectStatusString(s)
	if err != nil {
		return 0, fmt.Errorf("unknown project status %q", s)
	}
	return status, nil
}
