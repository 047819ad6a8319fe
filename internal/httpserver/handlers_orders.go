package httpserver

import (
	"net/http"

	"truckfleet/apperr"
	"truckfleet/internal/auth"
	"truckfleet/internal/service"
	"truckfleet/models"
)

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Truck <= 0 || req.Pickup <= 0 || req.Dropoff <= 0 {
		s.writeError(w, r, apperr.Invalidf("truck, pickup and dropoff are required"))
		return
	}
	in := service.CreateOrderInput{TruckID: req.Truck, PickupID: req.Pickup, DropoffID: req.Dropoff}
	if req.Status != nil {
		status, ok := models.ParseOrderStatus(*req.Status)
		if !ok {
			s.writeError(w, r, apperr.Invalidf("status must be one of: created, in_transit, completed"))
			return
		}
		in.Status = &status
	}

	o, err := s.orders.Create(r.Context(), p, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	query := service.ListOrdersQuery{Expand: queryBool(q, "expand")}
	if query.Page, err = queryInt(q, "page", 1); err != nil {
		s.writeError(w, r, err)
		return
	}
	if query.Limit, err = queryInt(q, "limit", 10); err != nil {
		s.writeError(w, r, err)
		return
	}
	if raw := q.Get("status"); raw != "" {
		status, ok := models.ParseOrderStatus(raw)
		if !ok {
			s.writeError(w, r, apperr.Invalidf("status must be one of: created, in_transit, completed"))
			return
		}
		query.Status = &status
	}
	if query.TruckID, err = queryInt64(q, "truck"); err != nil {
		s.writeError(w, r, err)
		return
	}
	if query.UserID, err = queryInt64(q, "user"); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.orders.List(r.Context(), p, query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleOrderStats(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	stats, err := s.orders.StatsByStatus(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathID(r, "Order")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	o, err := s.orders.Get(r.Context(), p, id, queryBool(r.URL.Query(), "expand"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathID(r, "Order")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req updateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	o, err := s.orders.UpdateRefs(r.Context(), p, id, service.UpdateOrderInput{
		TruckID:   req.Truck,
		PickupID:  req.Pickup,
		DropoffID: req.Dropoff,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleChangeOrderStatus(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathID(r, "Order")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req changeStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	status, ok := models.ParseOrderStatus(req.Status)
	if !ok {
		s.writeError(w, r, apperr.Invalidf("status must be one of: created, in_transit, completed"))
		return
	}

	o, err := s.orders.ChangeStatus(r.Context(), p, id, status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathID(r, "Order")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.orders.Remove(r.Context(), p, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{Deleted: true})
}
