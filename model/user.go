package model

import (
	"time"
)

type User struct {
	ID int64 `json:"id" xorm:"pk autoincr"`
	//基础信息
	CreatedAt    time.Time `json:"created_at" xorm:"created"`                          //创建时间
	Username     string    `json:"username" xorm:"VARBINARY(64) unique index notnull"` //用户名
	Password     string    `json:"password" xorm:"VARBINARY(32) notnull"`              //密码
	School       string    `json:"school" xorm:"varchar(64) notnull index"`            //学校
	Email        string    `json:"email"  xorm:"varchar(32) unique index notnull"`     //邮箱
	Description  string    `json:"description" xorm:"text"`                            //自我描述
	Avatar       string    `json:"avatar"`                                             //头像路径
	IsAdmin      bool      `json:"is_admin"`                                           //是否是管理员,管理员能进后台,然后存在相关权限, 普通用户无任何权限
	IsSuperAdmin bool      `json:"is_super_admin"`                                     //超级管理员,拥有任何权限
	Privilege    uint64    `json:"privilege"`                                          //权限信息
	//比赛相关
	CurrentContestID int64   `json:"current_contest_id"` //当前正在参加的participation id, 0表示没有; 只由加入/退出比赛修改
	Organizations    []int64 `json:"organizations"`      //所属组织
	ContestCount     uint    `json:"contest_count"`      //参加过的比赛数
}

type Organization struct {
	ID        int64     `json:"id" xorm:"pk autoincr"`
	CreatedAt time.Time `json:"created_at" xorm:"created"`
	Name      string    `json:"name" xorm:"varchar(64) unique notnull"`
	Desc      string    `json:"desc" xorm:"text"`
	UserCount uint      `json:"user_count"`
}

func (o *Organization) GetTableName() string {
	return "organization"
}
