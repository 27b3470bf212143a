package model

import "time"

//答卷状态
const (
	RESULT_PENDING = "Pending"
	RESULT_AC      = "Accepted"
	RESULT_PARTIAL = "PartialAccepted"
	RESULT_WA      = "WrongAnswer"
)

//一份答卷对应一次参与, 只能被评判一次
type Submission struct {
	ID              int64     `json:"id" xorm:"pk autoincr"`
	CreatedAt       time.Time `json:"created_at" xorm:"created"`
	ParticipationID int64     `json:"participation_id" xorm:"unique index"` //并发取卷只允许一份答卷成功落库
	ContestID       int64     `json:"contest_id" xorm:"index"`
	UserID          int64     `json:"user_id" xorm:"index"`
	Result          string    `json:"result" xorm:"varchar(20) default 'Pending'"`
	Time            time.Time `json:"time"`
	ShuffleSeed     int64     `json:"shuffle_seed"` //选项乱序种子, 创建时固定
}

func (s *Submission) GetTableName() string {
	return "submission"
}

//每道比赛题的作答内容
type SubmissionProblem struct {
	ID               int64  `json:"id" xorm:"pk autoincr"`
	SubmissionID     int64  `json:"submission_id" xorm:"unique(sp) index"`
	ContestProblemID int64  `json:"contest_problem_id" xorm:"unique(sp) index"`
	Output           string `json:"output" xorm:"text"`
}

func (sp *SubmissionProblem) GetTableName() string {
	return "submission_problem"
}
