package services

import (
	"github.com/ffarena/arena-backend/models"
	"github.com/ffarena/arena-backend/storage"
)

func isValidTournamentType(t models.TournamentType) bool {
	switch t {
	case models.TypeSolo, models.TypeDuo, models.TypeSquad:
		return true
	}
	return false
}

func isValidTournamentStatus(s models.TournamentStatus) bool {
	switch s {
	case models.StatusOpen, models.StatusClosed:
		return true
	}
	return false
}

func imageExtension(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", ErrUnsupportedImageType
	}
}

func populateTournamentBanner(t *models.Tournament, uploader storage.FileUploader) {
	if t == nil || t.BannerKey == nil {
		return
	}
	url := uploader.PublicURL(*t.BannerKey)
	if url != "" {
		t.BannerURL = &url
	}
}

func populateChampionMedia(c *models.Champion, uploader storage.FileUploader) {
	if c == nil {
		return
	}
	if c.HeroKey != nil {
		if url := uploader.PublicURL(*c.HeroKey); url != "" {
			c.HeroImageURL = &url
		}
	}
	if c.ProofKey != nil {
		if url := uploader.PublicURL(*c.ProofKey); url != "" {
			c.ProofImageURL = &url
		}
	}
	c.GalleryMediaURLs = make([]string, 0, len(c.GalleryKeys))
	for _, key := range c.GalleryKeys {
		if url := uploader.PublicURL(key); url != "" {
			c.GalleryMediaURLs = append(c.GalleryMediaURLs, url)
		}
	}
}
