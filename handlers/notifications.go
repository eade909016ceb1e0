package handlers

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/Gojer16/Elevare-sub001/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Per-user registry of live WebSocket connections. A user may have several
// tabs open; every one of them gets the toast.
var (
	wsConns = make(map[uint]map[*websocket.Conn]bool)
	wsMu    sync.RWMutex
)

type unlockEvent struct {
	Type         string            `json:"type"`
	Achievements []services.Unlock `json:"achievements"`
}

// WebSocketUpgrade authenticates the upgrade request. Browsers can't set an
// Authorization header on a WebSocket handshake, so the JWT rides in the
// `token` query parameter.
func WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	tokenString := c.Query("token")
	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing token"})
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "elevare-secret-change-in-production"
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return c.Status(401).JSON(fiber.Map{"error": "Token expired"})
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid user ID in token"})
	}

	c.Locals("wsUserId", uint(userID))
	return c.Next()
}

// NotificationSocket keeps the connection registered until the client goes
// away. The read loop exists only to detect disconnects; clients don't send
// anything meaningful.
var NotificationSocket = websocket.New(func(conn *websocket.Conn) {
	userID, ok := conn.Locals("wsUserId").(uint)
	if !ok {
		conn.Close()
		return
	}

	registerConn(userID, conn)
	defer unregisterConn(userID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
})

func registerConn(userID uint, conn *websocket.Conn) {
	wsMu.Lock()
	defer wsMu.Unlock()

	if wsConns[userID] == nil {
		wsConns[userID] = make(map[*websocket.Conn]bool)
	}
	wsConns[userID][conn] = true
}

func unregisterConn(userID uint, conn *websocket.Conn) {
	wsMu.Lock()
	defer wsMu.Unlock()

	delete(wsConns[userID], conn)
	if len(wsConns[userID]) == 0 {
		delete(wsConns, userID)
	}
	conn.Close()
}

// NotifyUnlocks pushes newly unlocked achievements to the user's open
// connections. Delivery is best effort; the unlock is already persisted and
// the REST response carries it too.
func NotifyUnlocks(userID uint, unlocks []services.Unlock) {
	wsMu.RLock()
	conns := make([]*websocket.Conn, 0, len(wsConns[userID]))
	for conn := range wsConns[userID] {
		conns = append(conns, conn)
	}
	wsMu.RUnlock()

	event := unlockEvent{Type: "achievement_unlocked", Achievements: unlocks}
	for _, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("ws push to user %d failed: %v", userID, err)
		}
	}
}
