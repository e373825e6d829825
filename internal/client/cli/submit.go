package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/filex"
)

var readImage = filex.ReadImage

// Submit asks for a description, an optional photo and an optional location
// and hands the draft to the orchestrator. The outcome is printed by the
// console notifier.
func (a *App) Submit(ctx context.Context) error {
	desc, err := askStory(a.reader, "Tell your story", a.out)
	if err != nil {
		return err
	}

	photo, err := a.askPhoto()
	if err != nil {
		return err
	}

	lat, lon, err := a.askLocation()
	if err != nil {
		return err
	}

	a.submitter.Submit(ctx, models.NewStoryDraft(desc, photo, lat, lon))
	return nil
}

func (a *App) askPhoto() (*models.Photo, error) {
	path, err := askLine(a.reader, "Photo file (leave empty for none)", a.out)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}

	data, mime, err := readImage(path, models.MaxPhotoSize)
	if err != nil {
		return nil, common.NewError(common.KindValidation, "cannot attach photo: "+err.Error(), err)
	}
	return &models.Photo{Data: data, MimeType: mime}, nil
}

func (a *App) askLocation() (*float64, *float64, error) {
	text, err := askLine(a.reader, "Location as lat,lon (leave empty for none)", a.out)
	if err != nil {
		return nil, nil, err
	}
	return parseLocation(text)
}

// parseLocation accepts "lat,lon" or an empty string. Range checks are left
// to draft validation.
func parseLocation(s string) (*float64, *float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, nil, common.NewError(common.KindValidation, "location must look like lat,lon", nil)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, nil, common.NewError(common.KindValidation, "latitude is not a number", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, nil, common.NewError(common.KindValidation, "longitude is not a number", err)
	}
	return &lat, &lon, nil
}
