package httpserver

// Request and response shapes for the JSON API. Field names follow the
// wire contract; validation happens in the handlers before anything
// reaches a service.

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

type createTruckRequest struct {
	Year   string `json:"year"`
	Color  string `json:"color"`
	Plates string `json:"plates"`
}

type updateTruckRequest struct {
	Year   *string `json:"year"`
	Color  *string `json:"color"`
	Plates *string `json:"plates"`
}

type createLocationRequest struct {
	PlaceID string `json:"placeId"`
}

type updateLocationRequest struct {
	PlaceID *string `json:"placeId"`
	Address *string `json:"address"`
}

type createOrderRequest struct {
	Truck   int64   `json:"truck"`
	Pickup  int64   `json:"pickup"`
	Dropoff int64   `json:"dropoff"`
	Status  *string `json:"status"`
}

type updateOrderRequest struct {
	Truck   *int64 `json:"truck"`
	Pickup  *int64 `json:"pickup"`
	Dropoff *int64 `json:"dropoff"`
}

type changeStatusRequest struct {
	Status string `json:"status"`
}
