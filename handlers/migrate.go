package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"gallery/auth"
	"gallery/gallery"
	"gallery/migration"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// migrationJob tracks one import per browser; the last progress report stays
// around for polling after the socket is gone.
type migrationJob struct {
	mu       sync.Mutex
	running  bool
	progress migration.Progress
}

func (j *migrationJob) update(p migration.Progress) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.progress = p
	j.running = p.Stage != "done" && p.Stage != "failed"
}

func (j *migrationJob) snapshot() (migration.Progress, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.progress, j.running
}

var migrationJobs = cmap.New[*migrationJob]()

// MigrateWebSocket runs an albumizr import over a websocket. The client sends
// the album link as its first message and receives progress reports until the
// import settles. One import at a time per browser.
func MigrateWebSocket(c *gin.Context, s *gallery.Session) {
	token := auth.LoadSession(c).VisitorToken()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer conn.Close()

	_, message, err := conn.ReadMessage()
	if err != nil {
		log.Println("read err:", err)
		return
	}
	key, err := migration.ExtractKey(string(message))
	if err != nil {
		writeProgress(conn, migration.Progress{Stage: "failed", Error: err.Error()})
		return
	}

	job := &migrationJob{}
	started := false
	migrationJobs.Upsert(token, job, func(exist bool, valueInMap, newValue *migrationJob) *migrationJob {
		if exist {
			if _, running := valueInMap.snapshot(); running {
				return valueInMap
			}
		}
		started = true
		newValue.update(migration.Progress{Stage: "fetching"})
		return newValue
	})
	if !started {
		writeProgress(conn, migration.Progress{Stage: "failed", Error: "an import is already running"})
		return
	}

	importer := migration.NewImporter(s)
	_, err = importer.Run(key, func(p migration.Progress) {
		job.update(p)
		writeProgress(conn, p)
	})
	if err != nil {
		log.Printf("Import of %s failed: %v", key, err)
	}
}

// MigrateStatus reports the last known progress of this browser's import.
func MigrateStatus(c *gin.Context, s *gallery.Session) {
	token := auth.LoadSession(c).VisitorToken()
	job, ok := migrationJobs.Get(token)
	if !ok {
		c.JSON(http.StatusNotFound, Response{Error: "no import"})
		return
	}
	progress, running := job.snapshot()
	c.JSON(http.StatusOK, gin.H{"error": "", "running": running, "progress": progress})
}

func writeProgress(conn *websocket.Conn, p migration.Progress) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Println("write err:", err)
	}
}
