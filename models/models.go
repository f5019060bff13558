package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User documents are keyed by email; the role field is the sole
// authority for admin capability, and its absence means member.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email string             `bson:"email" json:"email"`
	Name  string             `bson:"name,omitempty" json:"name,omitempty"`
	Role  string             `bson:"role,omitempty" json:"role,omitempty"`
	Photo string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
}

const RoleAdmin = "admin"

type Camp struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name             string             `bson:"campName" json:"campName"`
	Location         string             `bson:"location" json:"location"`
	ProfessionalName string             `bson:"professionalName" json:"professionalName"`
	DateTime         string             `bson:"dateTime" json:"dateTime"`
	Fees             float64            `bson:"fees" json:"fees"`
	ParticipantCount int                `bson:"participantCount" json:"participantCount"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	PhotoURL         string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	AddedBy          string             `bson:"addedBy" json:"addedBy"`
}

// Registration rows are deduplicated solely by FindingKey, the naive
// participantEmail+campId concatenation the client has always used.
// Two distinct (email, campId) pairs could in principle concatenate to
// the same key; kept for compatibility with existing documents rather
// than silently re-keyed. See DESIGN.md.
type Registration struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FindingKey         string             `bson:"findingKey" json:"findingKey"`
	CampID             string             `bson:"campId" json:"campId"`
	CampName           string             `bson:"campName" json:"campName"`
	ParticipantEmail   string             `bson:"participantEmail" json:"participantEmail"`
	ParticipantName    string             `bson:"participantName" json:"participantName"`
	Fees               float64            `bson:"fees" json:"fees"`
	PaymentStatus      string             `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	ConfirmationStatus string             `bson:"confirmationStatus,omitempty" json:"confirmationStatus,omitempty"`
}

// One-way status values; set once by conditional update, never cleared.
const (
	StatusPaid      = "Paid"
	StatusConfirmed = "Confirmed"
)

// FindingKey builds the composite registration/review key.
func FindingKey(email, campID string) string {
	return email + campID
}

type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FindingKey string             `bson:"findingKey" json:"findingKey"`
	Email      string             `bson:"email" json:"email"`
	CampID     string             `bson:"campId" json:"campId"`
	CampName   string             `bson:"campName,omitempty" json:"campName,omitempty"`
	UserName   string             `bson:"userName,omitempty" json:"userName,omitempty"`
	UserPhoto  string             `bson:"userPhoto,omitempty" json:"userPhoto,omitempty"`
	Rating     int                `bson:"rating" json:"rating"`
	Comment    string             `bson:"comment" json:"comment"`
}

// Payment records are append-only; status fields are copied from the
// registration at payment time.
type Payment struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FindingKey         string             `bson:"findingKey" json:"findingKey"`
	CampID             string             `bson:"campId" json:"campId"`
	CampName           string             `bson:"campName" json:"campName"`
	PaidBy             string             `bson:"paidBy" json:"paidBy"`
	Fees               float64            `bson:"fees" json:"fees"`
	TransactionID      string             `bson:"transactionId" json:"transactionId"`
	PaymentStatus      string             `bson:"paymentStatus" json:"paymentStatus"`
	ConfirmationStatus string             `bson:"confirmationStatus,omitempty" json:"confirmationStatus,omitempty"`
}

type Subscriber struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email string             `bson:"email" json:"email"`
	Name  string             `bson:"name,omitempty" json:"name,omitempty"`
}

type ContactMessage struct {
	MessageID string `bson:"messageId" json:"messageId"`
	Name      string `bson:"name" json:"name"`
	Email     string `bson:"email" json:"email"`
	Subject   string `bson:"subject,omitempty" json:"subject,omitempty"`
	Body      string `bson:"body" json:"body"`
}

// Professional is the projection of a camp down to presenter identity,
// served by the professionals directory.
type Professional struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProfessionalName string             `bson:"professionalName" json:"professionalName"`
	CampName         string             `bson:"campName" json:"campName"`
	Location         string             `bson:"location" json:"location"`
	Since            string             `bson:"-" json:"since,omitempty"`
}
