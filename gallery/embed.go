package gallery

import (
	"net/url"

	"gallery/config"
)

// EmbedURL builds the shareable link for an album. The owner flag marks the
// link as cut by the album's owner, which the embed view renders without the
// editing chrome.
func EmbedURL(base, albumID string, owner bool) string {
	values := url.Values{}
	values.Set("album", albumID)
	if owner {
		values.Set("owner", "1")
	}
	return base + "/w/embed?" + values.Encode()
}

// EmbedURL returns the shareable link for the selected album, or "" when
// nothing is selected.
func (s *Session) EmbedURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.album == nil {
		return ""
	}
	owner := s.userID != "" && s.album.OwnerID != nil && *s.album.OwnerID == s.userID
	return EmbedURL(config.EMBED_BASE_URL, s.album.ID, owner)
}
