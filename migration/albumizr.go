// Package migration re-hosts albums from albumizr.com. The source service
// exposes no API, so the importer scrapes the album page for its embedded
// image list and pushes every image through the regular upload pipeline.
package migration

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"time"

	"gallery/gallery"
	"gallery/models"
)

const defaultBaseURL = "https://albumizr.com"

var (
	keyPattern       = regexp.MustCompile(`albumizr\.com/a/([A-Za-z0-9]+)`)
	barePattern      = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	imageListPattern = regexp.MustCompile(`(?s)var\s+imageList\s*=\s*(\[.*?\]);`)
	titlePattern     = regexp.MustCompile(`<title>([^<]*)</title>`)
)

// Entry is one image of the scraped album page.
type Entry struct {
	Src     string `json:"src"`
	Caption string `json:"caption"`
}

// Progress reports how far an import has come. Stage is one of "fetching",
// "importing", "done" or "failed".
type Progress struct {
	Stage string `json:"stage"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
	Error string `json:"error,omitempty"`
}

// ExtractKey pulls the album key out of an albumizr link. A bare key passes
// through unchanged.
func ExtractKey(raw string) (string, error) {
	if match := keyPattern.FindStringSubmatch(raw); match != nil {
		return match[1], nil
	}
	if barePattern.MatchString(raw) {
		return raw, nil
	}
	return "", &gallery.ValidationError{Field: "url", Message: "not an albumizr link"}
}

// Importer copies one albumizr album into a freshly created local album.
type Importer struct {
	Session *gallery.Session
	Client  *http.Client
	BaseURL string
}

func NewImporter(session *gallery.Session) *Importer {
	return &Importer{
		Session: session,
		Client:  &http.Client{Timeout: 30 * time.Second},
		BaseURL: defaultBaseURL,
	}
}

// Run scrapes the album page, creates a local album and re-hosts every image
// into it. Images that cannot be downloaded are skipped and counted in the
// progress reports. The report callback may be nil.
func (imp *Importer) Run(key string, report func(Progress)) (*models.Album, error) {
	if report == nil {
		report = func(Progress) {}
	}
	report(Progress{Stage: "fetching"})
	title, entries, err := imp.fetchAlbumPage(key)
	if err != nil {
		report(Progress{Stage: "failed", Error: err.Error()})
		return nil, err
	}
	if len(entries) == 0 {
		err = errors.New("album page carries no images")
		report(Progress{Stage: "failed", Error: err.Error()})
		return nil, err
	}
	if title == "" {
		title = "Albumizr import - " + key
	}

	album, err := imp.Session.CreateAlbum(title)
	if err != nil {
		report(Progress{Stage: "failed", Error: err.Error()})
		return nil, err
	}
	for i, entry := range entries {
		report(Progress{Stage: "importing", Done: i, Total: len(entries)})
		if err := imp.importEntry(entry); err != nil {
			log.Printf("Skipping %s: %v", entry.Src, err)
		}
	}
	report(Progress{Stage: "done", Done: len(entries), Total: len(entries)})
	return album, nil
}

func (imp *Importer) fetchAlbumPage(key string) (string, []Entry, error) {
	resp, err := imp.Client.Get(imp.BaseURL + "/a/" + key)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("album page returned %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}
	match := imageListPattern.FindSubmatch(body)
	if match == nil {
		return "", nil, errors.New("no image list on album page")
	}
	var entries []Entry
	if err := json.Unmarshal(match[1], &entries); err != nil {
		return "", nil, fmt.Errorf("image list is malformed: %w", err)
	}
	title := ""
	if m := titlePattern.FindSubmatch(body); m != nil {
		title = string(m[1])
	}
	return title, entries, nil
}

func (imp *Importer) importEntry(entry Entry) error {
	resp, err := imp.Client.Get(entry.Src)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	inserted, err := imp.Session.UploadImages([]gallery.UploadFile{{
		Name:        entry.Src,
		ContentType: contentType,
		Data:        data,
	}})
	if err != nil {
		return err
	}
	if len(inserted) == 1 && entry.Caption != "" {
		if err := imp.Session.UpdateCaption(inserted[0].ID, entry.Caption); err != nil {
			log.Printf("Could not set caption on %s: %v", inserted[0].ID, err)
		}
	}
	return nil
}
