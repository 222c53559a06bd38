// Package storage holds the blob-store collaborator: opaque paths in, bytes
// out. Rows in the database stay authoritative; blob operations during
// cascading deletes are best-effort only.
package storage

import (
	"io"
	"log"
	"net/http"

	"gallery/config"
)

type StorageAPI interface {
	// Save uploads a blob and returns the number of bytes written.
	Save(path, contentType string, reader io.Reader) (int64, error)
	Delete(path string) error
	// PublicURL resolves a stored path to a browser-reachable URL.
	PublicURL(path string) string
	Serve(path string, request *http.Request, writer http.ResponseWriter)
}

var active StorageAPI

func Init() {
	if config.S3_BUCKET != "" {
		active = NewS3Storage()
		log.Printf("Blob storage: S3 bucket %s", config.S3_BUCKET)
	} else {
		active = NewDiskStorage(config.DATA_DIR)
		log.Printf("Blob storage: local directory %s", config.DATA_DIR)
	}
}

func Get() StorageAPI {
	if active == nil {
		panic("storage not initialised")
	}
	return active
}

// DeleteAll removes a set of blobs, logging and swallowing individual
// failures. Row deletion is authoritative; a leaked blob is not an error the
// caller can act on.
func DeleteAll(s StorageAPI, paths []string) {
	for _, path := range paths {
		if err := s.Delete(path); err != nil {
			log.Printf("Blob delete failed for %s: %v", path, err)
		}
	}
}
