package dto

import (
	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/listing"
)

// UserIDsRequest selects the rows of a bulk action.
type UserIDsRequest struct {
	UserIDs []string `json:"userIds"`
}

// ListResponse is a page of records with its list state and navigation links.
type ListResponse[T any] struct {
	Data   []T            `json:"data"`
	Page   domain.Page    `json:"page"`
	Params listing.Params `json:"params"`
	Links  listing.Links  `json:"links"`
}
