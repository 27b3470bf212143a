package model

import "time"

//比赛参与方式: 0为正式参赛, -1为观战(出题人), 大于0为赛后的第n次虚拟重赛
const (
	LIVE     int = 0
	SPECTATE int = -1
)

type Contest struct {
	ID                    int64     `json:"id" xorm:"pk autoincr"`
	Key                   string    `json:"key" xorm:"varchar(32) unique index notnull"`
	Title                 string    `json:"title" xorm:"varchar(64) notnull"`
	Begin                 time.Time `json:"begin"`
	End                   time.Time `json:"end"`
	Length                uint      `json:"length"` //单位秒
	Desc                  string    `json:"desc" xorm:"text"`
	Author                string    `json:"author"`
	IsPrivate             bool      `json:"is_private"`
	IsOrganizationPrivate bool      `json:"is_organization_private"`
	AccessCode            string    `json:"access_code" xorm:"varchar(255)"`
	HideScoreboard        bool      `json:"hide_scoreboard"` //进行中是否隐藏排行榜(只能看自己的匿名行)
	BannedUsers           []int64   `json:"banned_users"`
	EditorIDs             []int64   `json:"editor_ids"`
	Organizations         []int64   `json:"organizations"`
	Format                string    `json:"format" xorm:"varchar(10) default 'OI'"` //ACM 或 OI
	Status                string    `json:"status" xorm:"default 'Pending'"`        //Pending,Running,Ended
	UserCount             uint      `json:"user_count"`
}

func (c *Contest) GetTableName() string {
	return "contest"
}

func (c *Contest) Ended(now time.Time) bool {
	return now.After(c.End)
}

func (c *Contest) Started(now time.Time) bool {
	return !now.Before(c.Begin)
}

//比赛窗口开放才能正式加入, 出题人除外(调用处判断)
func (c *Contest) CanJoin(now time.Time) bool {
	return c.Started(now) && !c.Ended(now)
}

func (c *Contest) IsEditor(uid int64) bool {
	for _, id := range c.EditorIDs {
		if id == uid {
			return true
		}
	}
	return false
}

func (c *Contest) IsBanned(uid int64) bool {
	for _, id := range c.BannedUsers {
		if id == uid {
			return true
		}
	}
	return false
}

func (c *Contest) InOrganizations(orgs []int64) bool {
	for _, org := range c.Organizations {
		for _, o := range orgs {
			if org == o {
				return true
			}
		}
	}
	return false
}

//私有比赛只有组织成员、出题人、超管可见
func (c *Contest) AccessibleBy(uid int64, orgs []int64, isSuperAdmin bool) bool {
	if !c.IsPrivate && !c.IsOrganizationPrivate {
		return true
	}
	if isSuperAdmin || c.IsEditor(uid) {
		return true
	}
	if c.IsOrganizationPrivate && c.InOrganizations(orgs) {
		return true
	}
	return false
}

//完整排行榜: 赛后对所有人开放, 进行中若设置隐藏则只有出题人和超管能看
func (c *Contest) CanSeeFullScoreboard(uid int64, isSuperAdmin bool, now time.Time) bool {
	if !c.HideScoreboard || c.Ended(now) {
		return true
	}
	return isSuperAdmin || c.IsEditor(uid)
}

type ContestParticipation struct {
	ID             int64           `json:"id" xorm:"pk autoincr"`
	ContestID      int64           `json:"contest_id" xorm:"unique(cuv) index"`
	UserID         int64           `json:"user_id" xorm:"unique(cuv) index"`
	Virtual        int             `json:"virtual" xorm:"unique(cuv)"`
	RealStart      time.Time       `json:"real_start"`
	Score          int64           `json:"score"`
	Cumtime        uint            `json:"cumtime"` //单位秒
	Tiebreaker     float64         `json:"tiebreaker"`
	IsDisqualified bool            `json:"is_disqualified"`
	ProblemStatus  map[string]uint `json:"problem_status"` //cpid -> 得分
}

func (p *ContestParticipation) GetTableName() string {
	return "contest_participation"
}

func (p *ContestParticipation) IsLive() bool {
	return p.Virtual == LIVE
}

func (p *ContestParticipation) IsSpectate() bool {
	return p.Virtual == SPECTATE
}

func (p *ContestParticipation) IsVirtual() bool {
	return p.Virtual > LIVE
}

//参与窗口的截止: 虚拟重赛从real_start起算一个比赛时长, 其余跟随比赛本身
func (p *ContestParticipation) EndTime(c *Contest) time.Time {
	if p.IsVirtual() {
		return p.RealStart.Add(time.Duration(c.Length) * time.Second)
	}
	return c.End
}

func (p *ContestParticipation) Ended(c *Contest, now time.Time) bool {
	return now.After(p.EndTime(c))
}

type ContestProblem struct {
	ID        int64 `json:"id" xorm:"pk autoincr"`
	ContestID int64 `json:"contest_id" xorm:"unique(cp) index"`
	ProblemID int64 `json:"problem_id" xorm:"unique(cp) index"`
	Order     int   `json:"order" xorm:"'sequence'"` //展示顺序
	Points    uint  `json:"points" xorm:"default 100"`
}

func (cp *ContestProblem) GetTableName() string {
	return "contest_problem"
}
