package models

import "time"

type DailyStat struct {
	TotalMessages int
	ActiveUsers   UserSet
}

type WeeklyStat struct {
	TotalMessages int
	ActiveUsers   UserSet
	UserMessages  map[string]int
}

type MemberEvent struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

type DayEvents struct {
	Joins  []MemberEvent `json:"joins"`
	Leaves []MemberEvent `json:"leaves"`
}

// Document is the whole tracked state. Messages is keyed by user id and
// then by UTC date, the other mappings by UTC date (WeeklyStats by the
// date of the week's Sunday).
type Document struct {
	Messages     map[string]map[string]int
	DailyStats   map[string]*DailyStat
	WeeklyStats  map[string]*WeeklyStat
	MemberEvents map[string]*DayEvents
	LastUpdate   time.Time
}

func NewDocument(now time.Time) *Document {
	return &Document{
		Messages:     make(map[string]map[string]int),
		DailyStats:   make(map[string]*DailyStat),
		WeeklyStats:  make(map[string]*WeeklyStat),
		MemberEvents: make(map[string]*DayEvents),
		LastUpdate:   now,
	}
}

func NewDailyStat() *DailyStat {
	return &DailyStat{ActiveUsers: NewUserSet()}
}

func NewWeeklyStat() *WeeklyStat {
	return &WeeklyStat{
		ActiveUsers:  NewUserSet(),
		UserMessages: make(map[string]int),
	}
}

// Clone returns a deep copy. Nil mappings stay nil.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{LastUpdate: d.LastUpdate}

	if d.Messages != nil {
		out.Messages = make(map[string]map[string]int, len(d.Messages))
		for user, days := range d.Messages {
			cp := make(map[string]int, len(days))
			for day, n := range days {
				cp[day] = n
			}
			out.Messages[user] = cp
		}
	}

	if d.DailyStats != nil {
		out.DailyStats = make(map[string]*DailyStat, len(d.DailyStats))
		for day, st := range d.DailyStats {
			if st == nil {
				out.DailyStats[day] = nil
				continue
			}
			out.DailyStats[day] = &DailyStat{
				TotalMessages: st.TotalMessages,
				ActiveUsers:   st.ActiveUsers.Clone(),
			}
		}
	}

	if d.WeeklyStats != nil {
		out.WeeklyStats = make(map[string]*WeeklyStat, len(d.WeeklyStats))
		for week, st := range d.WeeklyStats {
			if st == nil {
				out.WeeklyStats[week] = nil
				continue
			}
			um := make(map[string]int, len(st.UserMessages))
			for user, n := range st.UserMessages {
				um[user] = n
			}
			out.WeeklyStats[week] = &WeeklyStat{
				TotalMessages: st.TotalMessages,
				ActiveUsers:   st.ActiveUsers.Clone(),
				UserMessages:  um,
			}
		}
	}

	if d.MemberEvents != nil {
		out.MemberEvents = make(map[string]*DayEvents, len(d.MemberEvents))
		for day, ev := range d.MemberEvents {
			if ev == nil {
				out.MemberEvents[day] = nil
				continue
			}
			out.MemberEvents[day] = &DayEvents{
				Joins:  append([]MemberEvent(nil), ev.Joins...),
				Leaves: append([]MemberEvent(nil), ev.Leaves...),
			}
		}
	}

	return out
}
