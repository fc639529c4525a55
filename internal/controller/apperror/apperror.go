package apperror

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrEventAlreadyStored = errors.New("event already stored")
var ErrPlanNotFound = errors.New("plan not found")

var ErrInvalidEventsQuery = errors.New("invalid events query")
