package handler

import (
	"strings"

	"github.com/pkordes/campmatch/internal/domain"
)

// deviceFromUserAgent buckets a User-Agent into mobile, tablet or desktop.
// Tablets are checked first because iPad and Android tablet agents also
// mention mobile platforms.
func deviceFromUserAgent(ua string) domain.DeviceType {
	ua = strings.ToLower(ua)
	switch {
	case strings.Contains(ua, "ipad"),
		strings.Contains(ua, "tablet"),
		strings.Contains(ua, "kindle"),
		strings.Contains(ua, "silk"),
		strings.Contains(ua, "android") && !strings.Contains(ua, "mobile"):
		return domain.DeviceTablet
	case strings.Contains(ua, "mobi"),
		strings.Contains(ua, "iphone"),
		strings.Contains(ua, "ipod"),
		strings.Contains(ua, "android"),
		strings.Contains(ua, "windows phone"):
		return domain.DeviceMobile
	default:
		return domain.DeviceDesktop
	}
}

// resolveDevice prefers a valid client-declared device type and falls back
// to the User-Agent.
func resolveDevice(declared domain.DeviceType, ua string) domain.DeviceType {
	switch declared {
	case domain.DeviceMobile, domain.DeviceTablet, domain.DeviceDesktop:
		return declared
	}
	return deviceFromUserAgent(ua)
}
