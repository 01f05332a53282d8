package main

import "net/http"

// The backend needs Cross-Origin Resource Sharing to function with the mobile
// dev client in modern browsers. The CORS headers need to be set here in order
// to make the backend available to the Expo web build.

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Allow requests from the Expo dev server and web preview
		origin := r.Header.Get("Origin")
		if origin == "http://localhost:8081" || origin == "http://127.0.0.1:8081" ||
			origin == "http://localhost:19006" || origin == "http://127.0.0.1:19006" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		} else {
			// default to the Expo web preview port
			w.Header().Set("Access-Control-Allow-Origin", "http://localhost:19006")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
