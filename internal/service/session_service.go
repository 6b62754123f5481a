package service

import (
	"context"
	"time"

	"Aura_Community/internal/model"
	"Aura_Community/internal/repository/mysql"

	"gorm.io/gorm"
)

type SessionService struct {
	repo         *mysql.SessionRepository
	attendeeRepo *mysql.SessionAttendeeRepository
}

// UserBrief 参与者对外视图（id + 展示名）
type UserBrief struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type SessionView struct {
	ID           uint64      `json:"id"`
	Title        string      `json:"title"`
	Date         string      `json:"date"`
	Time         string      `json:"time"`
	MaxAttendees int         `json:"max_attendees"`
	Creator      UserBrief   `json:"creator"`
	Attendees    []UserBrief `json:"attendees"`
	CreatedAt    time.Time   `json:"created_at"`
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{
		repo:         &mysql.SessionRepository{DB: db},
		attendeeRepo: &mysql.SessionAttendeeRepository{DB: db},
	}
}

// CreateSession 创建场次，创建者同事务入会
func (s *SessionService) CreateSession(ctx context.Context, userID uint64, title, date, timeStr string, maxAttendees int) (*SessionView, error) {
	if title == "" || date == "" || timeStr == "" {
		return nil, ErrValidation
	}
	if maxAttendees <= 0 {
		return nil, ErrValidation
	}

	session := &model.Session{
		Title:        title,
		Date:         date,
		Time:         timeStr,
		MaxAttendees: maxAttendees,
		CreatorID:    userID,
	}
	if err := s.repo.CreateWithCreator(ctx, session); err != nil {
		return nil, err
	}
	return s.buildView(ctx, session)
}

// Join 入会。错误次序：不存在 -> 已加入 -> 满员，容量闸门在仓储事务里
func (s *SessionService) Join(ctx context.Context, userID, sessionID uint64) (*SessionView, error) {
	if err := s.attendeeRepo.Join(ctx, sessionID, userID); err != nil {
		return nil, err
	}
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, session)
}

// Leave 退出。创建者永远不可退出（只能删除场次）；
// 非成员退出按无操作成功处理，与仓储删除的幂等语义一致。
func (s *SessionService) Leave(ctx context.Context, userID, sessionID uint64) (*SessionView, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CreatorID == userID {
		return nil, ErrCreatorLeave
	}
	if _, err := s.attendeeRepo.Leave(ctx, sessionID, userID); err != nil {
		return nil, err
	}
	session, err = s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, session)
}

// Delete 仅创建者可删，参与关系级联删除
func (s *SessionService) Delete(ctx context.Context, userID, sessionID uint64) error {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.CreatorID != userID {
		return ErrNotOwner
	}
	return s.repo.DeleteCascade(ctx, sessionID)
}

// List 全量场次，新的在前，参与者解析成 id+用户名
func (s *SessionService) List(ctx context.Context) ([]SessionView, error) {
	sessions, err := s.repo.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(sessions))
	for i := range sessions {
		ids = append(ids, sessions[i].ID)
	}
	rows, err := s.attendeeRepo.ListBySessions(ctx, ids)
	if err != nil {
		return nil, err
	}
	bySession := make(map[uint64][]UserBrief, len(sessions))
	for _, row := range rows {
		bySession[row.SessionID] = append(bySession[row.SessionID], UserBrief{ID: row.UserID, Username: row.Username})
	}

	views := make([]SessionView, 0, len(sessions))
	for i := range sessions {
		views = append(views, viewOf(&sessions[i], bySession[sessions[i].ID]))
	}
	return views, nil
}

func (s *SessionService) Get(ctx context.Context, sessionID uint64) (*SessionView, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, session)
}

func (s *SessionService) buildView(ctx context.Context, session *model.Session) (*SessionView, error) {
	rows, err := s.attendeeRepo.ListBySessions(ctx, []uint64{session.ID})
	if err != nil {
		return nil, err
	}
	attendees := make([]UserBrief, 0, len(rows))
	for _, row := range rows {
		attendees = append(attendees, UserBrief{ID: row.UserID, Username: row.Username})
	}
	v := viewOf(session, attendees)
	return &v, nil
}

func viewOf(session *model.Session, attendees []UserBrief) SessionView {
	v := SessionView{
		ID:           session.ID,
		Title:        session.Title,
		Date:         session.Date,
		Time:         session.Time,
		MaxAttendees: session.MaxAttendees,
		Creator:      UserBrief{ID: session.CreatorID},
		Attendees:    attendees,
		CreatedAt:    session.CreatedAt,
	}
	// 创建者必然在参与者里，顺带解析展示名
	for _, a := range attendees {
		if a.ID == session.CreatorID {
			v.Creator = a
			break
		}
	}
	return v
}
