// Package clientip extracts real client IP addresses from HTTP requests.
//
// Proxy headers are checked in priority order, the first valid address wins:
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (leftmost entry, the original client)
//  4. X-Real-IP (nginx and other proxies)
//  5. RemoteAddr (direct connection)
//
// Addresses are validated and normalized with net.ParseIP; the unspecified addresses
// (0.0.0.0, ::) are rejected. When nothing valid is found GetIP returns the raw RemoteAddr,
// so it never fails.
//
// The request context uses GetIP as the default client identifier:
//
//	rc.SetClientID(clientip.GetIP(r))
package clientip
