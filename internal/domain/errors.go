package domain

import "errors"

var (
	// ErrInvalidStayRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidStayRange = errors.New("domain: check-out date must be after check-in date")

	// ErrInvalidRate возвращается при неположительной цене за ночь
	ErrInvalidRate = errors.New("domain: nightly rate must be positive")
)
