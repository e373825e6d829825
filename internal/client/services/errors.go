package services

import (
	"errors"

	"github.com/dmitrijs2005/storykeeper/internal/client/client"
	"github.com/dmitrijs2005/storykeeper/internal/common"
)

// classify turns a gateway or store error into a *common.Error. Errors that
// are already classified pass through unchanged.
func classify(err error) *common.Error {
	if err == nil {
		return nil
	}

	var ce *common.Error
	if errors.As(err, &ce) {
		return ce
	}

	switch {
	case errors.Is(err, client.ErrUnavailable):
		return common.NewError(common.KindNetworkUnavailable, "the story server cannot be reached", err)
	case errors.Is(err, common.ErrTokenExpired):
		return common.NewError(common.KindAuth, "your session has expired, please log in again", err)
	case errors.Is(err, common.ErrNoToken):
		return common.NewError(common.KindAuth, "please log in first", err)
	case errors.Is(err, client.ErrUnauthorized):
		return common.NewError(common.KindAuth, serverMessage(err, "not authorized"), err)
	case errors.Is(err, client.ErrValidation):
		return common.NewError(common.KindValidation, serverMessage(err, "the server rejected the request"), err)
	case errors.Is(err, client.ErrServer):
		return common.NewError(common.KindServer, serverMessage(err, "the story server failed, try again later"), err)
	}
	return common.NewError(common.KindInternal, "unexpected error", err)
}

func serverMessage(err error, fallback string) string {
	var re *client.ResponseError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
