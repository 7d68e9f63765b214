package contest

import (
	"net/http"

	"github.com/typingtutor/backend/srvcerror"
)

const ErrCodeContestNotFound = "contest_not_found"

func newErrContestNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContestNotFound,
		"contest not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeEntryNotFound = "entry_not_found"

func newErrEntryNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEntryNotFound,
		"contest entry not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeRegistrationClosed = "registration_closed"

func newErrRegistrationClosed() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeRegistrationClosed,
		"registration for this contest is closed",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeEntryAlreadyExists = "entry_already_exists"

func newErrEntryAlreadyExists() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEntryAlreadyExists,
		"an application for this contest already exists",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeReceiptMissing = "receipt_missing"

func newErrReceiptMissing() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeReceiptMissing,
		"a payment receipt file is required",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeReceiptUnsupportedType = "receipt_unsupported_type"

func newErrReceiptUnsupportedType() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeReceiptUnsupportedType,
		"the receipt must be an image or a PDF",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeNotApproved = "entry_not_approved"

func newErrNotApproved() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotApproved,
		"typing is not allowed until your payment is approved",
	).SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeContestNotRunning = "contest_not_running"

func newErrContestNotRunning() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContestNotRunning,
		"the contest is not running right now",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeAttemptsExhausted = "attempts_exhausted"

func newErrAttemptsExhausted() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAttemptsExhausted,
		"the attempt limit for this contest is exhausted",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeContestFull = "contest_full"

func newErrContestFull() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContestFull,
		"the contest has reached its participant limit",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeInvalidStatus = "invalid_contest_status"

func newErrInvalidStatus() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidStatus,
		"invalid contest status",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidWindow = "invalid_contest_window"

func newErrInvalidWindow() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidWindow,
		"the contest end time must be after its start time",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func newErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
