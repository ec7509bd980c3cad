package nstest

import (
	"net/http"
	"time"
)

type aclEntry struct {
	user  string
	group string
	perm  string
}

type member struct {
	userName string
	nickname string
	quota    int64
	disabled bool
	admin    bool
}

type group struct {
	id     int64
	parent int64
	name   string
	admins []string
	users  []string
}

type copyTask struct {
	polls int
	src   string
	dst   string
}

type change struct {
	path      string
	size      int64
	isDeleted bool
	isDir     bool
	modified  time.Time
	revision  int64
}

type activity struct {
	operator  string
	operation string
	ip        string
	at        time.Time
}

type state struct {
	teamID      int64
	members     []*member
	groups      map[int64]*group
	nextGroupID int64
	acls        map[string][]aclEntry
	shares      map[string]string
	copies      map[string]*copyTask
	history     []*change
	revisions   map[string]int64
	activities  []*activity
	reset       bool
	pageSize    int
}

func newState(owner string) *state {
	return &state{
		teamID:      1,
		members:     []*member{{userName: owner, quota: 1 << 30, admin: true}},
		groups:      map[int64]*group{1: {id: 1, name: "root", admins: []string{owner}}},
		nextGroupID: 2,
		acls:        make(map[string][]aclEntry),
		shares:      make(map[string]string),
		copies:      make(map[string]*copyTask),
		revisions:   make(map[string]int64),
		reset:       true,
		pageSize:    2,
	}
}

func (st *state) addHistory(p string, deleted bool, dir bool, size int64) {
	st.revisions[p]++
	st.history = append(st.history, &change{
		path:      p,
		size:      size,
		isDeleted: deleted,
		isDir:     dir,
		modified:  time.Now().UTC(),
		revision:  st.revisions[p],
	})
}

func (st *state) addActivity(user string, op string, ip string) {
	st.activities = append(st.activities, &activity{operator: user, operation: op, ip: ip, at: time.Now()})
}

func (st *state) findMember(user string) *member {
	for _, m := range st.members {
		if m.userName == user {
			return m
		}
	}
	return nil
}

func (st *state) removeMember(user string) bool {
	for i, m := range st.members {
		if m.userName == user {
			st.members = append(st.members[:i], st.members[i+1:]...)
			return true
		}
	}
	return false
}

func notFound(what string) (int, interface{}) {
	return http.StatusNotFound, newFault("ObjectNotFound", what+" not found")
}

func badRequest(msg string) (int, interface{}) {
	return http.StatusBadRequest, newFault("BadRequest", msg)
}
