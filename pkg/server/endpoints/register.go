package endpoints

import (
	"github.com/vidzel/vidzel/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterAuthEndpoints(srv)
	RegisterProfilesEndpoints(srv)
	RegisterUploadEndpoints(srv)
	RegisterProjectsEndpoints(srv)
	RegisterApplicationsEndpoints(srv)
	RegisterInvitationsEndpoints(srv)
	RegisterWorkspacesEndpoints(srv)
	RegisterNotificationsEndpoints(srv)
	RegisterCertificatesEndpoints(srv)
}
