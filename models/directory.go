package models

// RoleDefinition is a directory role resolved by display name
type RoleDefinition struct {
	Id          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// GroupRef is a directory group resolved by display name
type GroupRef struct {
	Id          string `json:"id"`
	DisplayName string `json:"displayName"`
}
