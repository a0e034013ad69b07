package model

import "time"

// Admin represents the single seeded administrator account stored in the
// `admins` table. The account is created once at process start if absent;
// there is no update or delete path.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – reserved login name.
//  PasswordHash – bcrypt hashed credential.
//  CreatedAt    – timestamp of seeding.
type Admin struct {
	ID           uint64    // admins.id
	Username     string    // admins.username
	PasswordHash string    // admins.password_hash
	CreatedAt    time.Time // admins.created_at
}
