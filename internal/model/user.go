package model

// UserIDKey is the gin context key holding the authenticated user's uuid.
const UserIDKey = "user_id"
