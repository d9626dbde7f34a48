package cargo

// Cargo status values as stored in the record store. The customer-facing
// strings are the source of truth; handlers compare against these constants.
const (
	StatusPreparing = "Hazırlanıyor"
	StatusInTransit = "Yolda"
	StatusDelivered = "Teslim edildi"
	StatusInReturn  = "İade İşlemi"
	StatusCancelled = "İptal Edildi"
)

// TimeLayout is the timestamp format used in cargo records and history.
const TimeLayout = "2006-01-02 15:04"

// HistoryEntry is one tracking event of a shipment.
type HistoryEntry struct {
	Date     string `json:"date"`
	Status   string `json:"status"`
	Location string `json:"location"`
}

// Cargo is a single shipment record. Values are copied in and out of the
// store; transitions never mutate a caller's record in place.
type Cargo struct {
	TrackingNumber    string         `json:"tracking_number"`
	UserID            string         `json:"user_id"`
	Status            string         `json:"status"`
	Location          string         `json:"location"`
	LastUpdate        string         `json:"last_update"`
	EstimatedDelivery string         `json:"estimated_delivery"`
	Description       string         `json:"description"`
	Weight            string         `json:"weight"`
	Dimensions        string         `json:"dimensions"`
	Carrier           string         `json:"carrier"`
	Insurance         string         `json:"insurance"`
	ReturnReason      string         `json:"return_reason,omitempty"`
	History           []HistoryEntry `json:"tracking_history"`
}

// User is a customer with their shipments.
type User struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	MemberSince string  `json:"member_since"`
	Cargos      []Cargo `json:"cargos"`
}
