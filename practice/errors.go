package practice

import (
	"github.com/typingtutor/backend/srvcerror"
)

func newErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
