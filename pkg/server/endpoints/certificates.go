package endpoints

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server"
	"github.com/vidzel/vidzel/pkg/server/store"
)

var certificateTemplate = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Certificate of Completion: {{.ProjectTitle}}</title>
    <style>
      body { font-family: Georgia, serif; text-align: center; padding: 4em; }
      .frame { border: 6px double #334; padding: 3em; }
      h1 { letter-spacing: .1em; text-transform: uppercase; }
      .name { font-size: 2em; margin: .5em 0; }
      @media print { body { padding: 0; } }
    </style>
  </head>
  <body>
    <div class="frame">
      <h1>Certificate of Completion</h1>
      <p>This certifies that</p>
      <p class="name">{{.UserName}}</p>
      <p>took part as {{.Role}} in</p>
      <h2>{{.ProjectTitle}}</h2>
      <p>organized by {{.OrganizationName}}</p>
      <p>Joined {{.JoinedAt.Format "January 2, 2006"}}, completed {{.CompletedAt.Format "January 2, 2006"}}</p>
    </div>
  </body>
</html>
`))

const msgCertificateUnavailable = "Certificate not available"

// RegisterCertificatesEndpoints registers the derived certificate endpoints
func RegisterCertificatesEndpoints(s *server.Server) {
	certificates := s.Router.PathPrefix("/certificates").Subrouter()
	certificates.Use(s.AuthMiddleware.Middleware)

	certificates.HandleFunc("", handleListCertificates(s)).Methods("GET")
	certificates.HandleFunc("/{projectId}", handleGetCertificate(s)).Methods("GET")
}

func isMissing(err error) bool {
	return errors.Is(err, store.ErrProjectNotFound) ||
		errors.Is(err, store.ErrWorkspaceNotFound) ||
		errors.Is(err, store.ErrMemberNotFound) ||
		errors.Is(err, model.ErrCertificateUnavailable)
}

// certificateFor derives the caller's certificate for a completed project
func certificateFor(s *server.Server, r *http.Request, project *model.Project) (*model.Certificate, error) {
	ctx := r.Context()
	ws, err := s.Stores.Workspaces.GetProjectWorkspace(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	member, err := s.Stores.Workspaces.GetMember(ctx, ws.ID, caller(r).AccountID)
	if err != nil {
		return nil, err
	}
	return model.NewCertificate(project, ws, member, now())
}

func handleListCertificates(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := s.Stores.Projects.ListCompletedProjects(r.Context(), caller(r).Account())
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}

		certificates := []model.Certificate{}
		for i := range projects {
			cert, err := certificateFor(s, r, &projects[i])
			if isMissing(err) {
				continue
			}
			if err != nil {
				respondWithInternalError(s, w, r, err)
				return
			}
			certificates = append(certificates, *cert)
		}
		respondWithJSON(w, http.StatusOK, certificates)
	}
}

func handleGetCertificate(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := s.Stores.Projects.GetProject(r.Context(), mux.Vars(r)["projectId"])
		if err == nil {
			var cert *model.Certificate
			if cert, err = certificateFor(s, r, project); err == nil {
				renderCertificate(s, w, r, cert)
				return
			}
		}
		if isMissing(err) {
			respondWithError(w, http.StatusNotFound, msgCertificateUnavailable)
			return
		}
		respondWithInternalError(s, w, r, err)
	}
}

func renderCertificate(s *server.Server, w http.ResponseWriter, r *http.Request, cert *model.Certificate) {
	if !acceptsHTML(r) {
		respondWithJSON(w, http.StatusOK, cert)
		return
	}
	var buf bytes.Buffer
	if err := certificateTemplate.Execute(&buf, cert); err != nil {
		respondWithInternalError(s, w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
