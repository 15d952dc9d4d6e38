package models

import "time"

type StoredDailyStat struct {
	TotalMessages int      `json:"totalMessages"`
	ActiveUsers   []string `json:"activeUsers"`
}

type StoredWeeklyStat struct {
	TotalMessages int            `json:"totalMessages"`
	ActiveUsers   []string       `json:"activeUsers"`
	UserMessages  map[string]int `json:"userMessages"`
}

// Storage is the on-disk shape of a Document: active user sets become
// arrays. It is used for the backing file, backups and JSON exports.
type Storage struct {
	Messages     map[string]map[string]int    `json:"messages"`
	DailyStats   map[string]*StoredDailyStat  `json:"dailyStats"`
	MemberEvents map[string]*DayEvents        `json:"memberEvents"`
	WeeklyStats  map[string]*StoredWeeklyStat `json:"weeklyStats"`
	LastUpdate   time.Time                    `json:"lastUpdate"`
}

// ToStorage converts sets to sorted arrays. A nil set is written as null.
func ToStorage(doc *Document) *Storage {
	st := &Storage{
		Messages:     doc.Messages,
		MemberEvents: doc.MemberEvents,
		LastUpdate:   doc.LastUpdate,
	}
	if doc.DailyStats != nil {
		st.DailyStats = make(map[string]*StoredDailyStat, len(doc.DailyStats))
		for day, ds := range doc.DailyStats {
			if ds == nil {
				continue
			}
			rec := &StoredDailyStat{TotalMessages: ds.TotalMessages}
			if ds.ActiveUsers != nil {
				rec.ActiveUsers = ds.ActiveUsers.Sorted()
			}
			st.DailyStats[day] = rec
		}
	}
	if doc.WeeklyStats != nil {
		st.WeeklyStats = make(map[string]*StoredWeeklyStat, len(doc.WeeklyStats))
		for week, ws := range doc.WeeklyStats {
			if ws == nil {
				continue
			}
			rec := &StoredWeeklyStat{
				TotalMessages: ws.TotalMessages,
				UserMessages:  ws.UserMessages,
			}
			if ws.ActiveUsers != nil {
				rec.ActiveUsers = ws.ActiveUsers.Sorted()
			}
			st.WeeklyStats[week] = rec
		}
	}
	return st
}

// FromStorage rebuilds the in-memory document. Arrays become sets; a
// missing or null array stays a nil set so validation can report it.
func FromStorage(st *Storage) *Document {
	doc := &Document{
		Messages:     st.Messages,
		MemberEvents: st.MemberEvents,
		LastUpdate:   st.LastUpdate,
	}
	if st.DailyStats != nil {
		doc.DailyStats = make(map[string]*DailyStat, len(st.DailyStats))
		for day, rec := range st.DailyStats {
			if rec == nil {
				continue
			}
			ds := &DailyStat{TotalMessages: rec.TotalMessages}
			if rec.ActiveUsers != nil {
				ds.ActiveUsers = NewUserSet(rec.ActiveUsers...)
			}
			doc.DailyStats[day] = ds
		}
	}
	if st.WeeklyStats != nil {
		doc.WeeklyStats = make(map[string]*WeeklyStat, len(st.WeeklyStats))
		for week, rec := range st.WeeklyStats {
			if rec == nil {
				continue
			}
			ws := &WeeklyStat{
				TotalMessages: rec.TotalMessages,
				UserMessages:  rec.UserMessages,
			}
			if ws.UserMessages == nil {
				ws.UserMessages = make(map[string]int)
			}
			if rec.ActiveUsers != nil {
				ws.ActiveUsers = NewUserSet(rec.ActiveUsers...)
			}
			doc.WeeklyStats[week] = ws
		}
	}
	return doc
}
