package model

import (
	"time"
)

type User struct {
	ID             uint   `gorm:"primaryKey"`
	Username       string `gorm:"size:64;not null;uniqueIndex"`
	HashedPassword string `gorm:"not null" json:"-"`
	Admin          bool   `gorm:"not null"`

	// Has-one through Copy.UserID. Nil unless the user currently rents a copy.
	AssignedCopy *Copy `gorm:"foreignKey:UserID"`
}

type Movie struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:100;not null"`
	Genre       string `gorm:"size:64"`
	Director    string `gorm:"size:100"`
	Year        int    `gorm:"not null"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"size:255"`

	Copies []Copy `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
}

type Copy struct {
	ID      uint       `gorm:"primaryKey"`
	MovieID uint       `gorm:"not null;index"`
	Movie   *Movie     `gorm:"foreignKey:MovieID"`
	UserID  *uint      `gorm:"index"`
	User    *User      `gorm:"foreignKey:UserID"`
	Status  CopyStatus `gorm:"type:varchar(16);not null"`
	Medium  string     `gorm:"size:32"`
}

// CopyStatus keeps the status values observed in the stored data.
// Invariant: UserID is non-nil exactly when Status is CopyStatusRented.
type CopyStatus string

const (
	CopyStatusAvailable CopyStatus = "Disponible"
	CopyStatusRented    CopyStatus = "Alquilada"
)

type RentalLog struct {
	ID        uint         `gorm:"primaryKey"`
	CopyID    uint         `gorm:"not null;index"`
	MovieID   uint         `gorm:"not null;index"`
	UserID    uint         `gorm:"not null;index"`
	Action    RentalAction `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time
}

type RentalAction string

const (
	RentalActionRented   RentalAction = "RENTED"
	RentalActionReturned RentalAction = "RETURNED"
)
