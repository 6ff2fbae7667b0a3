package models

// BusinessNameFallback is shown when a vendor has no business name.
const BusinessNameFallback = "Business Name N/A"

// VendorInfo holds the vendor's business details.
type VendorInfo struct {
	BusinessName string `json:"businessName"`
}

// Vendor represents the authenticated seller.
type Vendor struct {
	ID         string      `json:"_id"`
	Name       string      `json:"name"`
	Email      string      `json:"email,omitempty"`
	VendorInfo *VendorInfo `json:"vendorInfo,omitempty"`
}

// DisplayBusinessName returns the business name or BusinessNameFallback.
func (v Vendor) DisplayBusinessName() string {
	if v.VendorInfo == nil || v.VendorInfo.BusinessName == "" {
		return BusinessNameFallback
	}
	return v.VendorInfo.BusinessName
}

// LoginRequest represents the credentials posted on login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by the remote login endpoint.
type LoginResponse struct {
	Token  string `json:"token"`
	Vendor Vendor `json:"vendor"`
}

// Session is the persisted vendor login.
type Session struct {
	Token    string
	VendorID string
	Vendor   *Vendor
}
