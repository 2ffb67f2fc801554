package service

import (
	"context"
	"log"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"artcc_backend/internals/features/audit/model"
	authmw "artcc_backend/internals/middlewares/auth"
)

// Actor identifies who performed an audited action.
type Actor struct {
	Cid  int
	Name string
	IP   string
}

// ActorFromCtx pulls the actor off an authenticated fiber request.
func ActorFromCtx(c *fiber.Ctx) Actor {
	ip := c.Get("CF-Connecting-IP")
	if ip == "" {
		ip = c.IP()
	}
	if ip == "::1" {
		ip = "localhost"
	}
	return Actor{
		Cid:  authmw.Cid(c),
		Name: authmw.UserName(c),
		IP:   ip,
	}
}

// Logger is what domain services depend on; Recorder is the gorm-backed
// implementation.
type Logger interface {
	Record(ctx context.Context, actor Actor, action string, oldData, newData interface{})
}

type Recorder struct {
	DB *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{DB: db}
}

// Record appends one log row. Audit failures are logged and swallowed;
// they never fail the action they describe.
func (r *Recorder) Record(ctx context.Context, actor Actor, action string, oldData, newData interface{}) {
	entry := model.WebsiteLogModel{
		WebsiteLogCid:     actor.Cid,
		WebsiteLogName:    actor.Name,
		WebsiteLogIP:      actor.IP,
		WebsiteLogAction:  action,
		WebsiteLogOldData: toJSON(oldData),
		WebsiteLogNewData: toJSON(newData),
	}
	if err := r.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("[ERROR] audit: failed to record %q: %v", action, err)
	}
}

func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	raw, err := sonic.Marshal(v)
	if err != nil {
		log.Printf("[WARN] audit: snapshot marshal failed: %v", err)
		return nil
	}
	return datatypes.JSON(raw)
}
