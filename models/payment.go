package models

import "time"

// Invoice records the outcome of a payment attempt.
type Invoice struct {
	InvoiceID     string    `bson:"invoiceId" json:"invoiceId"`
	AppointmentID string    `bson:"appointmentId" json:"appointmentId"`
	PatientID     string    `bson:"patientId" json:"patientId"`
	Amount        float64   `bson:"amount" json:"amount"`
	Currency      string    `bson:"currency" json:"currency"`
	PaymentID     string    `bson:"paymentId" json:"paymentId"` // gateway reference
	ClientSecret  string    `bson:"-" json:"clientSecret,omitempty"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
