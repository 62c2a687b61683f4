package endpoints

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/vidzel/vidzel/pkg/audit"
	"github.com/vidzel/vidzel/pkg/blob"
	"github.com/vidzel/vidzel/pkg/server"
)

const defaultUploadMaxBytes = 10 << 20

// UploadResponse is returned after a successful upload
type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Key      string `json:"key"`
}

// RegisterUploadEndpoints registers the upload passthrough. Reads are public
// because the returned URLs are handed to other users.
func RegisterUploadEndpoints(s *server.Server) {
	uploads := s.Router.NewRoute().Subrouter()
	uploads.Use(s.AuthMiddleware.Middleware)
	uploads.HandleFunc("/uploads", handleUpload(s)).Methods("POST")
	uploads.HandleFunc("/api/upload-resume", handleUpload(s)).Methods("POST")

	s.Router.HandleFunc("/uploads/{key:.+}", handleGetUpload(s)).Methods("GET")
}

// errNoFile marks a multipart body without a "file" part
var errNoFile = errors.New("no file part")

// spooledUpload is a file part copied to disk while being hashed
type spooledUpload struct {
	file        *os.File
	fileName    string
	contentType string
	size        int64
	sum         []byte
}

func (u *spooledUpload) Close() {
	_ = u.file.Close()
	_ = os.Remove(u.file.Name())
}

// spoolUpload streams the "file" part of a multipart body into a temporary
// file, hashing it on the way so the content key is known once it ends.
func spoolUpload(r *http.Request) (*spooledUpload, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, errNoFile
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, errNoFile
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() != "file" || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		tmp, err := os.CreateTemp("", "vidzel-upload-*")
		if err != nil {
			return nil, err
		}
		u := &spooledUpload{file: tmp, fileName: part.FileName()}

		hasher := blob.NewHasher()
		u.size, err = io.Copy(tmp, io.TeeReader(part, hasher))
		_ = part.Close()
		if err != nil {
			u.Close()
			return nil, err
		}
		u.sum = hasher.Sum(nil)

		u.contentType = part.Header.Get("Content-Type")
		if u.contentType == "" || u.contentType == "application/octet-stream" {
			head := make([]byte, 512)
			n, _ := tmp.ReadAt(head, 0)
			u.contentType = http.DetectContentType(head[:n])
		}
		if _, err := tmp.Seek(0, io.SeekStart); err != nil {
			u.Close()
			return nil, err
		}
		return u, nil
	}
}

func handleUpload(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := caller(r)
		maxBytes := s.Config.UploadMaxBytes
		if maxBytes <= 0 {
			maxBytes = defaultUploadMaxBytes
		}

		if r.ContentLength > maxBytes {
			respondWithError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		upload, err := spoolUpload(r)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondWithError(w, http.StatusRequestEntityTooLarge, "File too large")
				return
			}
			respondWithError(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		defer upload.Close()

		key := blob.KeyFromSum(upload.fileName, upload.sum)
		backend := s.Blob.Backend()
		size := int(upload.size)
		if err := s.Blob.Put(r.Context(), key, upload.file, upload.size, upload.contentType); err != nil {
			audit.Log(audit.UploadEvent{
				UserID:       id.AccountID,
				ClientIP:     id.ClientIP(),
				Key:          key,
				Backend:      backend,
				Size:         size,
				ErrorMessage: err.Error(),
			})
			respondWithInternalError(s, w, r, err)
			return
		}

		s.Metrics.Upload(backend)
		audit.Log(audit.UploadEvent{
			UserID:   id.AccountID,
			ClientIP: id.ClientIP(),
			Key:      key,
			Backend:  backend,
			Size:     size,
			Success:  true,
		})
		s.Logger.Debug("stored upload", zap.String("key", key), zap.Int64("size", upload.size))

		respondWithJSON(w, http.StatusOK, UploadResponse{
			URL:      s.Blob.URL(key),
			FileName: upload.fileName,
			Key:      key,
		})
	}
}

func handleGetUpload(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := url.PathUnescape(mux.Vars(r)["key"])
		if err != nil || !blob.ValidKey(key) {
			respondWithError(w, http.StatusNotFound, "File not found")
			return
		}

		obj, err := s.Blob.Get(r.Context(), key)
		if errors.Is(err, blob.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "File not found")
			return
		}
		if err != nil {
			respondWithInternalError(s, w, r, err)
			return
		}

		contentType := obj.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(obj.Data)
	}
}
