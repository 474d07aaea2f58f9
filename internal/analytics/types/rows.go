package types

import (
	"time"

	cbigquery "cloud.google.com/go/bigquery"
)

// OrderFactRow mirrors the order_facts BigQuery schema. order_created lands
// one fully-priced row; every status transition appends another row with
// the money columns left null. Revenue queries filter on event_type.
type OrderFactRow struct {
	EventID      string             `bigquery:"event_id"`
	EventType    string             `bigquery:"event_type"`
	OccurredAt   time.Time          `bigquery:"occurred_at"`
	OrderID      *string            `bigquery:"order_id"`
	UserID       *string            `bigquery:"user_id"`
	VendorID     *string            `bigquery:"vendor_id"`
	Status       *string            `bigquery:"status"`
	DeliveryType *string            `bigquery:"delivery_type"`
	Subtotal     *float64           `bigquery:"subtotal"`
	Tax          *float64           `bigquery:"tax"`
	DeliveryFee  *float64           `bigquery:"delivery_fee"`
	GrandTotal   *float64           `bigquery:"grand_total"`
	ItemCount    *int64             `bigquery:"item_count"`
	LinkedWishID *string            `bigquery:"linked_wish_id"`
	Payload      cbigquery.NullJSON `bigquery:"payload"`
}
