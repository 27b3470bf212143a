package dao

import (
	"HappyEducation/common"
	"HappyEducation/model"
	"github.com/go-redis/redis/v8"
	"strconv"
	"time"
)

const (
	USER_REDIS_EXPIRE = 0 //用户在redis不过期
	USER_ZSET_KEY     = "user_zset(id)"
	USER_HASH_KEY     = "user_hash(name:id)"
)

/*
	user_zset: id 按参赛数量
	user_hash: username:id
*/

type User = model.User

type UserDao struct {
	ID       int64
	Username string
	User     *User
}

func userInitRedis() {
	users := make([]User, 0)
	engine.Find(&users)
	for idx := range users {
		ud := &UserDao{User: &users[idx]}
		PutToRedis(ud)
	}
}

func (ud *UserDao) GetRedisExpire() time.Duration {
	return USER_REDIS_EXPIRE
}
func (ud *UserDao) GetTableName() string {
	return "user"
}
func (ud *UserDao) GetSelf() interface{} {
	if ud.User == nil {
		ud.User = &User{}
	}
	return ud.User
}
func (ud *UserDao) GetName() string {
	if ud.Username == "" {
		if ud.User != nil && ud.User.Username != "" {
			ud.Username = ud.User.Username
		} else {
			ud.Username = OneCol(ud, "username").ToString()
		}
	}
	return ud.Username
}

func (ud *UserDao) GetRedisKey() string { //必须有id
	return ud.GetTableName() + "_" + strconv.FormatInt(ud.GetID(), 10)
}
func (ud *UserDao) GetID() int64 {
	if ud.ID == 0 {
		if ud.User != nil && ud.User.ID != 0 {
			ud.ID = ud.User.ID
		} else {
			name := ud.Username
			if name == "" && ud.User != nil {
				name = ud.User.Username
			}
			if name != "" {
				if rdb.HExists(ctx, USER_HASH_KEY, name).Val() {
					ud.ID = common.StrToInt64(rdb.HGet(ctx, USER_HASH_KEY, name).Val())
				} else {
					x := new(Col)
					if ok, err := engine.SQL("select id from user where username = ?", name).Get(&x.data); err == nil && ok {
						ud.ID = x.ToInt64()
					}
				}
			}
		}
	}
	return ud.ID
}

func (ud *UserDao) BeforePutToRedis() error {
	rdb.ZAdd(ctx, USER_ZSET_KEY, &redis.Z{
		Score:  -float64(ud.User.ContestCount),
		Member: ud.GetID(),
	})
	rdb.HSet(ctx, USER_HASH_KEY, ud.GetName(), ud.GetID())
	return nil
}

func (ud *UserDao) BeforeDelete() error {
	rdb.ZRem(ctx, USER_ZSET_KEY, ud.GetID())
	rdb.HDel(ctx, USER_HASH_KEY, ud.GetName())
	return nil
}

func (ud *UserDao) Create() error {
	return Create(ud)
}

func (ud *UserDao) Update(mp common.H) error {
	return UpdateCols(ud, mp)
}

func (ud *UserDao) IsSuperAdmin() bool {
	return OneCol(ud, "is_super_admin").ToBool()
}

func (ud *UserDao) GetOrganizations() []int64 {
	return OneCol(ud, "organizations").ToInt64Slice()
}

//当前参加的比赛指针, 只允许加入/退出比赛两处修改
func (ud *UserDao) GetCurrentContest() int64 {
	return OneCol(ud, "current_contest_id").ToInt64()
}

func (ud *UserDao) SetCurrentContest(participationID int64) error {
	return UpdateCols(ud, common.H{"current_contest_id": participationID})
}

func (ud *UserDao) ClearCurrentContest() error {
	return UpdateCols(ud, common.H{"current_contest_id": int64(0)})
}

type UsersData struct {
	IDs   []int64
	Datas [][]Col
}

func (us *UsersData) GetIDs(cols []string, values []interface{}, a ...int) []int64 { //len(a)=0或2
	if len(a) == 0 {
		engine.Table("user").Where(ToSqlConditions(cols), values...).Cols("id").Find(&us.IDs)
	} else {
		engine.Table("user").Where(ToSqlConditions(cols), values...).Cols("id").Limit(a[0], a[1]).Find(&us.IDs)
	}
	return us.IDs
}
func (us *UsersData) GetColsByIDs(wants []string) [][]Col {
	for _, id := range us.IDs {
		us.Datas = append(us.Datas, Cols(&UserDao{ID: id}, wants...))
	}
	return us.Datas
}

func SearchUsers(l, r int64, rules []string, values []interface{}) (int64, []User) {
	us := make([]User, 0)
	var total int64
	if len(rules) > 0 {
		engine.Desc("id").Where(ToSqlConditions(rules), values...).Limit(int(r-l+1), int(l-1)).Find(&us)
		total, _ = engine.Where(ToSqlConditions(rules), values...).Count(new(User))
	} else {
		engine.Desc("id").Limit(int(r-l+1), int(l-1)).Find(&us)
		total, _ = engine.Count(new(User))
	}
	return total, us
}
