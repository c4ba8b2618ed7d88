package booking

import (
	"time"
)

// ============================================================================
// ENUMERATIONS
// ============================================================================

// ServiceType identifies the kind of work booked.
type ServiceType string

const (
	ServicePrePleat ServiceType = "pre-pleat"
	ServiceDrape    ServiceType = "drape"
	ServiceBoth     ServiceType = "both"
)

// Location identifies where the service is performed.
type Location string

const (
	LocationShop   Location = "shop"
	LocationOnsite Location = "onsite"
)

// EnquiryStatus enumerates enquiry lifecycle states.
type EnquiryStatus string

const (
	EnquiryStatusNew       EnquiryStatus = "new"
	EnquiryStatusFollowUp  EnquiryStatus = "follow-up"
	EnquiryStatusConverted EnquiryStatus = "converted"
	EnquiryStatusCancelled EnquiryStatus = "cancelled"
)

// OrderStatus is a plain tag; any status may move to any other.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusReceived   OrderStatus = "received"
	OrderStatusInProgress OrderStatus = "in-progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// PaymentMode describes how money was received.
type PaymentMode string

const (
	PaymentModeCash    PaymentMode = "cash"
	PaymentModeUPI     PaymentMode = "upi"
	PaymentModeCard    PaymentMode = "card"
	PaymentModeBank    PaymentMode = "bank-transfer"
	PaymentModeAdvance PaymentMode = "advance"
	PaymentModeOther   PaymentMode = "other"
)

// Referral sources understood by the referral report.
const (
	ReferralMakeupArtist = "makeup_artist"
	ReferralCustomer     = "customer"
	ReferralInstagram    = "instagram"
	ReferralOther        = "other"
)

// DateLayout is the wire format of every date-only field.
const DateLayout = "2006-01-02"

// ============================================================================
// CUSTOMER
// ============================================================================

// MakeupArtist identifies an artist who referred a customer.
type MakeupArtist struct {
	Name  string `json:"name" validate:"required,max=120"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

type Customer struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	Phone                string        `json:"phone"`
	PermanentAddress     string        `json:"permanentAddress"`
	CreatedAt            time.Time     `json:"createdAt"`
	ReferralSource       string        `json:"referralSource,omitempty"`
	ReferredByCustomerID string        `json:"referredByCustomerId,omitempty"`
	MakeupArtistDetails  *MakeupArtist `json:"makeupArtistDetails,omitempty"`
}

type CreateCustomerRequest struct {
	Name                 string        `json:"name" validate:"required,max=120"`
	Phone                string        `json:"phone" validate:"required,max=32"`
	PermanentAddress     string        `json:"permanentAddress" validate:"max=500"`
	ReferralSource       string        `json:"referralSource,omitempty" validate:"omitempty,max=50"`
	ReferredByCustomerID string        `json:"referredByCustomerId,omitempty"`
	MakeupArtistDetails  *MakeupArtist `json:"makeupArtistDetails,omitempty" validate:"omitempty"`
}

// ============================================================================
// ENQUIRY
// ============================================================================

type Enquiry struct {
	ID           string        `json:"id"`
	CustomerID   string        `json:"customerId,omitempty"`
	CustomerName string        `json:"customerName"`
	Phone        string        `json:"phone"`
	ServiceType  ServiceType   `json:"serviceType"`
	Location     Location      `json:"location"`
	GPS          string        `json:"gps,omitempty"`
	EventDate    string        `json:"eventDate"`
	FunctionType string        `json:"functionType,omitempty"`
	PleatType    string        `json:"pleatType,omitempty"`
	SareeCount   int           `json:"sareeCount"`
	Notes        string        `json:"notes"`
	Status       EnquiryStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
}

type CreateEnquiryRequest struct {
	CustomerName string      `json:"customerName" validate:"max=120"`
	Phone        string      `json:"phone" validate:"required,max=32"`
	ServiceType  ServiceType `json:"serviceType" validate:"required,oneof=pre-pleat drape both"`
	Location     Location    `json:"location" validate:"required,oneof=shop onsite"`
	GPS          string      `json:"gps,omitempty" validate:"omitempty,max=200"`
	EventDate    string      `json:"eventDate" validate:"omitempty,datetime=2006-01-02"`
	FunctionType string      `json:"functionType,omitempty" validate:"omitempty,max=80"`
	PleatType    string      `json:"pleatType,omitempty" validate:"omitempty,max=80"`
	SareeCount   int         `json:"sareeCount" validate:"gte=1"`
	Notes        string      `json:"notes" validate:"max=2000"`

	ReferralSource       string        `json:"referralSource,omitempty" validate:"omitempty,max=50"`
	ReferredByCustomerID string        `json:"referredByCustomerId,omitempty"`
	MakeupArtistDetails  *MakeupArtist `json:"makeupArtistDetails,omitempty" validate:"omitempty"`
}

// UpdateEnquiryRequest carries an explicit edit. Status may not be set to converted here.
type UpdateEnquiryRequest struct {
	CustomerName *string        `json:"customerName,omitempty" validate:"omitempty,min=1,max=120"`
	ServiceType  *ServiceType   `json:"serviceType,omitempty" validate:"omitempty,oneof=pre-pleat drape both"`
	Location     *Location      `json:"location,omitempty" validate:"omitempty,oneof=shop onsite"`
	GPS          *string        `json:"gps,omitempty" validate:"omitempty,max=200"`
	EventDate    *string        `json:"eventDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	FunctionType *string        `json:"functionType,omitempty"`
	PleatType    *string        `json:"pleatType,omitempty"`
	SareeCount   *int           `json:"sareeCount,omitempty" validate:"omitempty,gte=1"`
	Notes        *string        `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Status       *EnquiryStatus `json:"status,omitempty" validate:"omitempty,oneof=new follow-up cancelled"`
}

// ============================================================================
// ORDER
// ============================================================================

// Charge is an extra line added on top of the base amount.
type Charge struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type Payment struct {
	ID     string      `json:"id"`
	Amount float64     `json:"amount"`
	Date   string      `json:"date"`
	Mode   PaymentMode `json:"mode"`
	Note   string      `json:"note,omitempty"`
}

type Order struct {
	ID                     string        `json:"id"`
	CustomerID             string        `json:"customerId,omitempty"`
	EnquiryID              string        `json:"enquiryId,omitempty"`
	CustomerName           string        `json:"customerName"`
	Phone                  string        `json:"phone"`
	Address                string        `json:"address"`
	ServiceType            ServiceType   `json:"serviceType"`
	Location               Location      `json:"location"`
	GPS                    string        `json:"gps,omitempty"`
	FunctionType           string        `json:"functionType,omitempty"`
	PleatType              string        `json:"pleatType,omitempty"`
	SareeCount             int           `json:"sareeCount"`
	SareeReceivedInAdvance bool          `json:"sareeReceivedInAdvance"`
	SareeReceivedDate      string        `json:"sareeReceivedDate"`
	EventDate              string        `json:"eventDate"`
	DeliveryDate           string        `json:"deliveryDate"`
	CollectionDate         string        `json:"collectionDate"`
	BaseAmount             float64       `json:"baseAmount"`
	AdditionalCharges      []Charge      `json:"additionalCharges"`
	TotalAmount            float64       `json:"totalAmount"`
	Payments               []Payment     `json:"payments"`
	AmountPaid             float64       `json:"amountPaid"`
	Status                 OrderStatus   `json:"status"`
	Notes                  string        `json:"notes"`
	ReferralSource         string        `json:"referralSource,omitempty"`
	ReferredByCustomerID   string        `json:"referredByCustomerId,omitempty"`
	MakeupArtistDetails    *MakeupArtist `json:"makeupArtistDetails,omitempty"`
	CreatedAt              time.Time     `json:"createdAt"`
	UpdatedAt              time.Time     `json:"updatedAt"`
}

// Balance is never stored; a negative value means the customer overpaid.
func (o Order) Balance() float64 {
	return o.TotalAmount - o.AmountPaid
}

type ChargeRequest struct {
	Name   string `json:"name" validate:"required,max=80"`
	Amount string `json:"amount" validate:"required"`
}

type CreateOrderRequest struct {
	CustomerName           string        `json:"customerName" validate:"max=120"`
	Phone                  string        `json:"phone" validate:"required,max=32"`
	PermanentAddress       string        `json:"permanentAddress" validate:"max=500"`
	Address                string        `json:"address" validate:"max=500"`
	ServiceType            ServiceType   `json:"serviceType" validate:"required,oneof=pre-pleat drape both"`
	Location               Location      `json:"location" validate:"required,oneof=shop onsite"`
	GPS                    string        `json:"gps,omitempty" validate:"omitempty,max=200"`
	FunctionType           string        `json:"functionType,omitempty" validate:"omitempty,max=80"`
	PleatType              string        `json:"pleatType,omitempty" validate:"omitempty,max=80"`
	SareeCount             int           `json:"sareeCount" validate:"gte=1"`
	SareeReceivedInAdvance bool          `json:"sareeReceivedInAdvance"`
	SareeReceivedDate      string        `json:"sareeReceivedDate" validate:"omitempty,datetime=2006-01-02"`
	EventDate              string        `json:"eventDate" validate:"omitempty,datetime=2006-01-02"`
	DeliveryDate           string        `json:"deliveryDate" validate:"omitempty,datetime=2006-01-02"`
	CollectionDate         string        `json:"collectionDate" validate:"omitempty,datetime=2006-01-02"`
	AdditionalCharges      []Charge      `json:"additionalCharges" validate:"dive"`
	Advance                float64       `json:"advance" validate:"gte=0"`
	AdvanceMode            PaymentMode   `json:"advanceMode,omitempty" validate:"omitempty,oneof=cash upi card bank-transfer advance other"`
	Status                 OrderStatus   `json:"status,omitempty" validate:"omitempty,oneof=pending received in-progress completed delivered"`
	Notes                  string        `json:"notes" validate:"max=2000"`
	ReferralSource         string        `json:"referralSource,omitempty" validate:"omitempty,max=50"`
	ReferredByCustomerID   string        `json:"referredByCustomerId,omitempty"`
	MakeupArtistDetails    *MakeupArtist `json:"makeupArtistDetails,omitempty" validate:"omitempty"`
}

// UpdateOrderRequest edits an order. Payments are managed through the ledger only.
type UpdateOrderRequest struct {
	CustomerName           *string      `json:"customerName,omitempty" validate:"omitempty,min=1,max=120"`
	Address                *string      `json:"address,omitempty" validate:"omitempty,max=500"`
	ServiceType            *ServiceType `json:"serviceType,omitempty" validate:"omitempty,oneof=pre-pleat drape both"`
	Location               *Location    `json:"location,omitempty" validate:"omitempty,oneof=shop onsite"`
	GPS                    *string      `json:"gps,omitempty"`
	FunctionType           *string      `json:"functionType,omitempty"`
	PleatType              *string      `json:"pleatType,omitempty"`
	SareeCount             *int         `json:"sareeCount,omitempty" validate:"omitempty,gte=1"`
	SareeReceivedInAdvance *bool        `json:"sareeReceivedInAdvance,omitempty"`
	SareeReceivedDate      *string      `json:"sareeReceivedDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EventDate              *string      `json:"eventDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DeliveryDate           *string      `json:"deliveryDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CollectionDate         *string      `json:"collectionDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AdditionalCharges      *[]Charge    `json:"additionalCharges,omitempty" validate:"omitempty,dive"`
	Status                 *OrderStatus `json:"status,omitempty" validate:"omitempty,oneof=pending received in-progress completed delivered"`
	Notes                  *string      `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type PaymentInput struct {
	Amount float64     `json:"amount" validate:"gt=0,lte=1000000000000"`
	Date   string      `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Mode   PaymentMode `json:"mode" validate:"omitempty,oneof=cash upi card bank-transfer advance other"`
	Note   string      `json:"note,omitempty" validate:"max=500"`
}

// ============================================================================
// SETTINGS
// ============================================================================

// Rates is the per-saree rate table.
type Rates struct {
	PrePleatRate float64 `json:"prePleatRate" validate:"gte=0,lte=1000000000000"`
	DrapeRate    float64 `json:"drapeRate" validate:"gte=0,lte=1000000000000"`
	BothRate     float64 `json:"bothRate" validate:"gte=0,lte=1000000000000"`
}

type BusinessProfile struct {
	BusinessName string `json:"businessName" validate:"max=120"`
	OwnerName    string `json:"ownerName" validate:"max=120"`
	Phone        string `json:"phone" validate:"max=32"`
	Email        string `json:"email" validate:"omitempty,email"`
	Address      string `json:"address" validate:"max=500"`
}

// Settings is replaced wholesale on save.
type Settings struct {
	Profile         BusinessProfile `json:"profile"`
	Rates           Rates           `json:"rates"`
	ChargeHeads     []string        `json:"chargeHeads"`
	FunctionTypes   []string        `json:"functionTypes"`
	PleatTypes      []string        `json:"pleatTypes"`
	ReferralSources []string        `json:"referralSources"`
	MakeupArtists   []MakeupArtist  `json:"makeupArtists" validate:"dive"`
}

// DefaultSettings is used on first run and whenever stored settings cannot be decoded.
func DefaultSettings() Settings {
	return Settings{
		Profile: BusinessProfile{BusinessName: "Saree Draping Studio"},
		Rates: Rates{
			PrePleatRate: 300,
			DrapeRate:    500,
			BothRate:     700,
		},
		ChargeHeads:     []string{"Travel", "Urgent", "Box Folding", "Pinning"},
		FunctionTypes:   []string{"Wedding", "Reception", "Engagement", "Haldi", "Party"},
		PleatTypes:      []string{"Regular", "Box", "Ironed", "Mermaid"},
		ReferralSources: []string{ReferralMakeupArtist, ReferralCustomer, ReferralInstagram, ReferralOther},
		MakeupArtists:   []MakeupArtist{},
	}
}

// Collections groups the three top-level entity lists.
type Collections struct {
	Orders    []Order
	Enquiries []Enquiry
	Customers []Customer
}
