package catalog

import (
	"net/http"

	"github.com/typingtutor/backend/srvcerror"
)

const ErrCodeCenterNotFound = "center_not_found"

func newErrCenterNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeCenterNotFound,
		"center not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeLanguageNotFound = "language_not_found"

func newErrLanguageNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeLanguageNotFound,
		"language not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeLevelNotFound = "level_not_found"

func newErrLevelNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeLevelNotFound,
		"level not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeDurationNotFound = "duration_not_found"

func newErrDurationNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeDurationNotFound,
		"duration not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeNoTextAvailable = "no_text_available"

func newErrNoTextAvailable() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNoTextAvailable,
		"no typing text available for this language and level",
	).SetHttpStatusCode(http.StatusNotFound)
}

func newErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
