package mysql

import (
	"context"
	"errors"

	"Aura_Community/internal/model"

	"gorm.io/gorm"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFull     = errors.New("session is full")
	ErrAlreadyJoined   = errors.New("already joined")
)

type SessionRepository struct {
	DB *gorm.DB
}

type SessionAttendeeRepository struct {
	DB *gorm.DB
}

// AttendeeRow 参与者解析结果（带用户名）
type AttendeeRow struct {
	SessionID uint64 `json:"-"`
	UserID    uint64 `json:"id"`
	Username  string `json:"username"`
}

// CreateWithCreator 创建场次并同事务写入创建者的参与关系，创建者从t=0就占一个名额
func (r *SessionRepository) CreateWithCreator(ctx context.Context, s *model.Session) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s.AttendeeCount = 1
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		return tx.Create(&model.SessionAttendee{
			SessionID: s.ID,
			UserID:    s.CreatorID,
		}).Error
	})
}

func (r *SessionRepository) FindByID(ctx context.Context, id uint64) (*model.Session, error) {
	var s model.Session
	err := r.DB.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	return &s, err
}

func (r *SessionRepository) ListNewestFirst(ctx context.Context) ([]model.Session, error) {
	var list []model.Session
	err := r.DB.WithContext(ctx).Order("created_at DESC, id DESC").Find(&list).Error
	return list, err
}

// DeleteCascade 先删参与关系再删场次，一个事务内完成，不留孤儿行
func (r *SessionRepository) DeleteCascade(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).
			Delete(&model.SessionAttendee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Session{}, id).Error
	})
}

// Join 入会。容量闸门是计数列的条件自增：拿不到行更新的请求即为满员。
// 计数行的排他锁让同场次的并发入会串行化；(session_id, user_id) 唯一索引
// 是重复入会的最终仲裁，冲突时整个事务回滚，计数不会多加。
func (r *SessionAttendeeRepository) Join(ctx context.Context, sessionID, userID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.SessionAttendee{}).
			Where("session_id = ? AND user_id = ?", sessionID, userID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyJoined
		}

		res := tx.Model(&model.Session{}).
			Where("id = ? AND attendee_count < max_attendees", sessionID).
			UpdateColumn("attendee_count", gorm.Expr("attendee_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 没抢到名额：要么场次不存在，要么已满
			var s model.Session
			if err := tx.Select("id").First(&s, sessionID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrSessionNotFound
				}
				return err
			}
			return ErrSessionFull
		}

		if err := tx.Create(&model.SessionAttendee{
			SessionID: sessionID,
			UserID:    userID,
		}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyJoined
			}
			return err
		}
		return insertOutbox(tx, "session.join", userID, sessionID)
	})
}

// Leave 退出场次（幂等：本就不在场次里视为成功，left=false）
func (r *SessionAttendeeRepository) Leave(ctx context.Context, sessionID, userID uint64) (bool, error) {
	var left bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("session_id = ? AND user_id = ?", sessionID, userID).
			Delete(&model.SessionAttendee{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			left = false
			return nil
		}
		left = true
		// 计数防负数，历史脏数据交给对账兜底
		if err := tx.Model(&model.Session{}).
			Where("id = ?", sessionID).
			UpdateColumn("attendee_count",
				gorm.Expr("CASE WHEN attendee_count > 0 THEN attendee_count - 1 ELSE 0 END")).
			Error; err != nil {
			return err
		}
		return insertOutbox(tx, "session.leave", userID, sessionID)
	})
	return left, err
}

func (r *SessionAttendeeRepository) IsMember(ctx context.Context, sessionID, userID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.SessionAttendee{}).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *SessionAttendeeRepository) CountBySession(ctx context.Context, sessionID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.SessionAttendee{}).
		Where("session_id = ?", sessionID).
		Count(&n).Error
	return n, err
}

// ListBySessions 批量查询参与者并连表解析用户名
func (r *SessionAttendeeRepository) ListBySessions(ctx context.Context, sessionIDs []uint64) ([]AttendeeRow, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	var rows []AttendeeRow
	err := r.DB.WithContext(ctx).Model(&model.SessionAttendee{}).
		Select("session_attendees.session_id AS session_id", "users.id AS user_id", "users.username AS username").
		Joins("JOIN users ON users.id = session_attendees.user_id").
		Where("session_attendees.session_id IN ?", sessionIDs).
		Order("session_attendees.id ASC").
		Scan(&rows).Error
	return rows, err
}
