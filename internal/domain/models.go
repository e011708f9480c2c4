package domain

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleCustomer string = "customer"
	RoleCreator  string = "creator"
)

const (
	ContestStatusActive   string = "active"
	ContestStatusPending  string = "pending"
	ContestStatusFinished string = "finished"
)

const (
	// OperationExpense money left the user's card for the platform.
	OperationExpense string = "EXPENSE"
	// OperationIncome money left the platform for the user's card.
	OperationIncome string = "INCOME"
)

type User struct {
	ID           int             `db:"id"`
	FirstName    string          `db:"first_name"`
	LastName     string          `db:"last_name"`
	DisplayName  string          `db:"display_name"`
	Email        string          `db:"email"`
	PasswordHash string          `db:"password_hash"`
	Avatar       string          `db:"avatar"`
	Role         string          `db:"role"`
	Balance      decimal.Decimal `db:"balance"`
	Rating       *float64        `db:"rating"`
	AccessToken  string          `db:"access_token"`
	CreatedAt    time.Time       `db:"created_at"`
}

type ProfileUpdate struct {
	FirstName   string
	LastName    string
	DisplayName string
	Avatar      string
}

type Account struct {
	ID      int             `db:"id"`
	Card    Card            `db:"-"`
	Balance decimal.Decimal `db:"balance"`
}

type Contest struct {
	ID             int             `db:"id"`
	OrderID        string          `db:"order_id"`
	UserID         int             `db:"user_id"`
	ContestType    string          `db:"contest_type"`
	Title          string          `db:"title"`
	Industry       string          `db:"industry"`
	FocusOfWork    string          `db:"focus_of_work"`
	TargetCustomer string          `db:"target_customer"`
	StyleName      string          `db:"style_name"`
	NameVenture    string          `db:"name_venture"`
	TypeOfName     string          `db:"type_of_name"`
	TypeOfTagline  string          `db:"type_of_tagline"`
	BrandStyle     string          `db:"brand_style"`
	Status         string          `db:"status"`
	Priority       int             `db:"priority"`
	Prize          decimal.Decimal `db:"prize"`
	CreatedAt      time.Time       `db:"created_at"`
}

type Transaction struct {
	ID            int             `db:"id"`
	Amount        decimal.Decimal `db:"amount"`
	OperationType string          `db:"operation_type"`
	UserID        int             `db:"user_id"`
	CreatedAt     time.Time       `db:"created_at"`
}

type Rating struct {
	OfferID int     `db:"offer_id"`
	UserID  int     `db:"user_id"`
	Mark    float64 `db:"mark"`
}

type Payment struct {
	Card     Card
	Price    decimal.Decimal
	Contests []Contest
}

type Cashout struct {
	Card Card
	Sum  decimal.Decimal
}

type MarkChange struct {
	OfferID   int
	CreatorID int
	Mark      float64
	IsFirst   bool
}

// CreatorRating is the recomputed aggregate. Rating is nil while the creator has no marks.
type CreatorRating struct {
	UserID int
	Rating *float64
}

type RatingChanged struct {
	CreatorID int       `json:"creatorId"`
	Rating    *float64  `json:"rating"`
	ChangedAt time.Time `json:"changedAt"`
}

type Registration struct {
	FirstName   string
	LastName    string
	DisplayName string
	Email       string
	Password    string
	Role        string
}

// Upload is a file received from the client, not yet stored.
type Upload struct {
	Name    string
	Content io.Reader
}
