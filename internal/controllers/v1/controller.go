// Package v1 implements the v1 API of the backend.
package v1

import (
	"github.com/kassenbuch/backend/internal/importer"
	"github.com/kassenbuch/backend/internal/storage"
)

// The import controllers need collaborators that are only known at
// startup, all other controllers work on models.DB alone.
var (
	imports *importer.Orchestrator
	uploads *storage.Local
)

// Configure sets the collaborators for the import controllers. It must
// be called once before the routes are attached.
func Configure(orchestrator *importer.Orchestrator, files *storage.Local) {
	imports = orchestrator
	uploads = files
}
