package model

import (
	"time"
)

//答题类型
const (
	ANSWER_TYPE_MC   = "mc"   //单选
	ANSWER_TYPE_FILL = "fill" //填空
)

type Problem struct {
	ID                    int64     `json:"id" xorm:"pk autoincr"`
	CreatedAt             time.Time `json:"created_at" xorm:"created"`
	Code                  string    `json:"code" xorm:"varchar(32) unique index notnull"`
	Title                 string    `json:"title" xorm:"varchar(64)"`
	Description           string    `json:"description" xorm:"text"`
	AnswerType            string    `json:"answer_type" xorm:"varchar(10) default 'mc'"` //mc 或 fill
	AuthorIDs             []int64   `json:"author_ids"`
	IsPublic              bool      `json:"is_public" xorm:"index"`
	IsOrganizationPrivate bool      `json:"is_organization_private"`
	Organizations         []int64   `json:"organizations"`
	LevelID               int64     `json:"level_id" xorm:"index"`
}

func (p *Problem) GetTableName() string {
	return "problem"
}

func (p *Problem) IsAuthor(uid int64) bool {
	for _, id := range p.AuthorIDs {
		if id == uid {
			return true
		}
	}
	return false
}

//选项, 单选题在出题时保证有且只有一个正确项
type Answer struct {
	ID          int64  `json:"id" xorm:"pk autoincr"`
	ProblemID   int64  `json:"problem_id" xorm:"index"`
	Description string `json:"description" xorm:"text"`
	IsCorrect   bool   `json:"is_correct"`
	Sequence    int    `json:"sequence"` //录入顺序
}

func (a *Answer) GetTableName() string {
	return "answer"
}

//难度分级, 题库按级展示
type Level struct {
	ID   int64  `json:"id" xorm:"pk autoincr"`
	Code string `json:"code" xorm:"varchar(32) unique index notnull"`
	Name string `json:"name" xorm:"varchar(64)"`
}

func (l *Level) GetTableName() string {
	return "level"
}
