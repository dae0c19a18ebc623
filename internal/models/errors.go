package models

import "errors"

var (
	ErrBannerNotFound    = errors.New("banner not found")
	ErrArticleNotFound   = errors.New("article not found")
	ErrSlugTaken         = errors.New("article slug already in use")
	ErrInquiryNotFound   = errors.New("inquiry not found")
	ErrInvalidTransition = errors.New("inquiry status transition not allowed")
	ErrFranchiseNotFound = errors.New("franchise not found")
	ErrCompareCount      = errors.New("compare needs between 2 and 4 franchises")
)
