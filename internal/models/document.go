package models

// Field names shared by the free-form documents of every collection.
const (
	FieldID    = "_id"
	FieldEmail = "email"
	FieldRole  = "role"
)

// Collection names inside the bistro database.
const (
	UsersCollection   = "users"
	MenuCollection    = "menu"
	ReviewsCollection = "reviews"
	CartsCollection   = "carts"
)

// RoleOf reads the role field of a user document.
func RoleOf(user map[string]any) Role {
	if user == nil {
		return RoleNone
	}
	return ParseRole(user[FieldRole])
}
