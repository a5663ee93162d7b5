package domain

import "errors"

var ErrDuplicateAccount = errors.New("an account with that email or mobile already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidCode = errors.New("invalid one-time code")
var ErrLevelAlreadyApproved = errors.New("level already approved by another admin")
var ErrPrivilegeDenied = errors.New("privilege denied")
var ErrNotFound = errors.New("not found")

var ErrInvalidLevel = errors.New("approval level must be 1, 2 or 3")
var ErrItemRejected = errors.New("item has been rejected")
var ErrOwnerProtected = errors.New("owner accounts cannot be modified")
var ErrInvalidInput = errors.New("invalid input")
var ErrInvalidStatus = errors.New("invalid status change")
var ErrInvalidResetToken = errors.New("reset token is invalid or expired")
var ErrUnauthenticated = errors.New("not authenticated")
