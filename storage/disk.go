package storage

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
)

type DiskStorage struct {
	// BasePath is a directory writable by the current process
	BasePath  string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(basePath string) StorageAPI {
	return &DiskStorage{
		BasePath: basePath,
		dirs:     make(map[string]bool, 10),
	}
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	s.dirs[dir] = true
	return os.MkdirAll(dir, 0777)
}

func (s *DiskStorage) getFullPath(path string) string {
	return s.BasePath + "/" + path
}

func (s *DiskStorage) Save(path, contentType string, reader io.Reader) (int64, error) {
	fileName := s.getFullPath(path)
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return 0, err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(file, reader)
	file.Close()
	return result, err
}

func (s *DiskStorage) Delete(path string) error {
	return os.Remove(s.getFullPath(path))
}

// PublicURL returns the server-relative fetch path; main.go routes /blob/* to
// Serve.
func (s *DiskStorage) PublicURL(path string) string {
	return "/blob/" + path
}

func (s *DiskStorage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	http.ServeFile(writer, request, s.getFullPath(path))
}
