package service

// QRCodeService renders order pickup codes as QR images.
type QRCodeService interface {
	// GeneratePickupQR encodes an order id into a PNG image.
	GeneratePickupQR(orderID string) ([]byte, error)
}
