package controller

import (
	"net/http"
	"strings"
)

// accountID extracts the authenticated account from the request. Design
// persistence and order submission require it; token validation itself
// happens at the gateway, this service only needs the identity.
func accountID(r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.Header.Get("X-Account-ID"))
	return id, id != ""
}

// requireAccount writes the "must sign in" precondition failure and reports
// whether the request may proceed
func requireAccount(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := accountID(r)
	if !ok {
		http.Error(w, "must sign in", http.StatusUnauthorized)
		return "", false
	}
	return id, true
}
