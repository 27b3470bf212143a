package dao

import (
	"HappyEducation/common"
	"HappyEducation/model"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-redis/redis/v8"
	"github.com/go-sql-driver/mysql"
	"sort"
	"strconv"
	"strings"
	"time"
)

type (
	Contest              = model.Contest
	ContestParticipation = model.ContestParticipation
	ContestProblem       = model.ContestProblem
)

//业务错误, 在请求边界转成给用户看的消息
var (
	ErrAlreadyInContest = errors.New("已经在别的比赛中")
	ErrNotOngoing       = errors.New("比赛不在进行中")
	ErrBanned           = errors.New("已被本场比赛拉黑,禁止加入")
	ErrAccessDenied     = errors.New("访问码缺失或错误")
	ErrNotInContest     = errors.New("不在本场比赛中")
)

var (
	pending = make(map[int64]*time.Timer)
	running = make(map[int64]*time.Timer)
)

func contestInit() {
	contest := make([]Contest, 0)
	engine.Find(&contest)
	for idx := range contest {
		cd := &ContestDao{Contest: &contest[idx]}
		cd.PutContest()
	}
}

/*
	part_zset: 编码排名分数, userid   (只含正式参与)
	part_hash: userid : jsonInfo     (只含正式参与)
	cproblem_list: json
*/

const (
	CONTEST_REDIS_EXPIRE = time.Hour * 24
	CONTEST_HASH_KEY     = "contest_hash(key:id)"
)

type ContestDao struct {
	ID      int64
	Key     string
	Contest *Contest
}

func (cd *ContestDao) GetTableName() string {
	return "contest"
}
func (cd *ContestDao) GetRedisExpire() time.Duration {
	return CONTEST_REDIS_EXPIRE
}
func (cd *ContestDao) GetSelf() interface{} {
	if cd.Contest == nil {
		cd.Contest = &Contest{}
	}
	return cd.Contest
}
func (cd *ContestDao) GetID() int64 {
	if cd.ID == 0 {
		if cd.Contest != nil && cd.Contest.ID != 0 {
			cd.ID = cd.Contest.ID
		} else {
			key := cd.Key
			if key == "" && cd.Contest != nil {
				key = cd.Contest.Key
			}
			if key != "" {
				if rdb.HExists(ctx, CONTEST_HASH_KEY, key).Val() {
					cd.ID = common.StrToInt64(rdb.HGet(ctx, CONTEST_HASH_KEY, key).Val())
				} else {
					x := new(Col)
					if ok, err := engine.SQL("select id from contest where `key` = ?", key).Get(&x.data); err == nil && ok {
						cd.ID = x.ToInt64()
					}
				}
			}
		}
	}
	return cd.ID
}
func (cd *ContestDao) GetKey() string {
	if cd.Key == "" {
		if cd.Contest != nil && cd.Contest.Key != "" {
			cd.Key = cd.Contest.Key
		} else {
			cd.Key = OneCol(cd, "key").ToString()
		}
	}
	return cd.Key
}
func (cd *ContestDao) GetRedisKey() string {
	return cd.GetTableName() + "_" + strconv.FormatInt(cd.GetID(), 10)
}
func (cd *ContestDao) BeforePutToRedis() error {
	rdb.HSet(ctx, CONTEST_HASH_KEY, cd.GetKey(), cd.GetID())
	cd.PutContest()
	return nil
}
func (cd *ContestDao) BeforeDelete() error {
	rdb.HDel(ctx, CONTEST_HASH_KEY, cd.GetKey())
	return nil
}
func (cd *ContestDao) Create() error {
	duration := cd.Contest.End.Sub(cd.Contest.Begin)
	cd.Contest.Length = uint(duration / time.Second)
	if err := Create(cd); err != nil {
		return err
	}
	cd.PutContest()
	return nil
}
func (cd *ContestDao) Delete() error {
	RemoveContest(cd.GetID())
	return Delete(cd)
}

func (cd *ContestDao) Update(mp common.H) error {
	if err := UpdateCols(cd, mp); err != nil {
		return err
	}
	_, ok1 := mp["begin"]
	_, ok2 := mp["end"]
	if ok1 || ok2 {
		GetSelfAll(cd)
		UpdateCols(cd, common.H{"length": uint(cd.Contest.End.Sub(cd.Contest.Begin) / time.Second)})
		cd.PutContest()
	}
	return nil
}

func RemoveContest(id int64) {
	if _, ok := pending[id]; ok {
		pending[id].Stop()
		delete(pending, id)
	}
	if _, ok := running[id]; ok {
		running[id].Stop()
		delete(running, id)
	}
}

//状态机: Pending -> Running -> Ended, 用定时器驱动
func (cd *ContestDao) PutContest() {
	c := cd.Contest
	RemoveContest(c.ID)
	now := time.Now()
	if now.After(c.End) {
		if c.Status != "Ended" {
			c.Status = "Ended"
			UpdateCols(cd, common.H{"status": "Ended"})
		}
		return
	}
	if now.Before(c.Begin) {
		if c.Status != "Pending" {
			c.Status = "Pending"
			UpdateCols(cd, common.H{"status": "Pending"})
		}
		pending[c.ID] = time.AfterFunc(c.Begin.Sub(now), func() {
			fmt.Println("比赛", c.ID, "已经开始")
			cd.PutContest()
		})
		return
	}
	if c.Status != "Running" {
		c.Status = "Running"
		UpdateCols(cd, common.H{"status": "Running"})
	}
	running[c.ID] = time.AfterFunc(c.End.Sub(now), func() {
		fmt.Println("比赛", c.ID, "已经结束")
		cd.PutContest()
	})
}

func SearchContests(l, r int64, rules []string, values []interface{}) (int64, []Contest) {
	cs := make([]Contest, 0)
	var total int64
	if len(rules) > 0 {
		engine.Desc("id").Where(ToSqlConditions(rules), values...).Limit(int(r-l+1), int(l-1)).Find(&cs)
		total, _ = engine.Where(ToSqlConditions(rules), values...).Count(new(Contest))
	} else {
		engine.Desc("id").Limit(int(r-l+1), int(l-1)).Find(&cs)
		total, _ = engine.Count(new(Contest))
	}
	return total, cs
}

func GetAllContests() []Contest {
	cs := make([]Contest, 0)
	engine.Asc("begin").Find(&cs)
	return cs
}

func getParticipationZsetKey(cid int64) string {
	return "c_" + strconv.FormatInt(cid, 10) + "_part_zset"
}
func getParticipationHashKey(cid int64) string {
	return "c_" + strconv.FormatInt(cid, 10) + "_part_hash"
}
func getCproblemListKey(cid int64) string {
	return "c_" + strconv.FormatInt(cid, 10) + "_cproblem_list"
}

//zset里的编码分数只用于粗排和计数, 最终名次在Go里按四个键精确排序
func getRankScore(p *ContestParticipation) float64 {
	score := -float64(p.Score)*1e9 + float64(p.Cumtime) + p.Tiebreaker*1e-6
	if p.IsDisqualified {
		score += 1e18
	}
	return score
}

func participationCache(cid int64) string {
	zkey := getParticipationZsetKey(cid)
	hkey := getParticipationHashKey(cid)
	if rdb.Exists(ctx, zkey, hkey).Val() < 2 {
		x := make([]ContestParticipation, 0)
		engine.Where("contest_id = ? and virtual = ?", cid, model.LIVE).Find(&x)
		for idx := range x {
			p := &x[idx]
			rdb.ZAdd(ctx, zkey, &redis.Z{
				Score:  getRankScore(p),
				Member: p.UserID,
			})
			bt, _ := json.Marshal(p)
			rdb.HSet(ctx, hkey, p.UserID, bt)
		}
		rdb.Expire(ctx, zkey, CONTEST_REDIS_EXPIRE)
		rdb.Expire(ctx, hkey, CONTEST_REDIS_EXPIRE)
	}
	return hkey
}

//正式参与写回缓存
func putParticipationCache(p *ContestParticipation) {
	if !p.IsLive() {
		return
	}
	participationCache(p.ContestID)
	rdb.ZAdd(ctx, getParticipationZsetKey(p.ContestID), &redis.Z{
		Score:  getRankScore(p),
		Member: p.UserID,
	})
	js, _ := json.Marshal(p)
	rdb.HSet(ctx, getParticipationHashKey(p.ContestID), p.UserID, js)
}

func CountLiveParticipations(cid int64) int64 {
	participationCache(cid)
	zkey := getParticipationZsetKey(cid)
	if rdb.Exists(ctx, zkey).Val() > 0 {
		return rdb.ZCount(ctx, zkey, "-inf", "+inf").Val()
	}
	total, _ := engine.Where("contest_id = ? and virtual = ?", cid, model.LIVE).Count(&ContestParticipation{})
	return total
}

//参赛人数是展示统计, 允许并发下的弱一致
func UpdateUserCount(cid int64) {
	cd := &ContestDao{ID: cid}
	UpdateCols(cd, common.H{"user_count": uint(CountLiveParticipations(cid))})
}

func GetParticipation(cid, uid int64, virtual int) *ContestParticipation {
	p := &ContestParticipation{}
	if has, err := engine.Where("contest_id = ? and user_id = ? and virtual = ?", cid, uid, virtual).Get(p); err != nil || !has {
		return nil
	}
	return p
}

//某用户的全部参与记录, 新的在前
func GetUserParticipations(uid int64) []ContestParticipation {
	ps := make([]ContestParticipation, 0)
	engine.Where("user_id = ?", uid).Desc("id").Find(&ps)
	return ps
}

func GetParticipationByID(id int64) *ContestParticipation {
	if id == 0 {
		return nil
	}
	p := &ContestParticipation{}
	if has, err := engine.ID(id).Get(p); err != nil || !has {
		return nil
	}
	return p
}

//赛后重赛的最大编号, 没有则为0
func maxVirtual(cid, uid int64) int {
	x := new(Col)
	if ok, err := engine.SQL("select max(virtual) from contest_participation where contest_id = ? and user_id = ?", cid, uid).Get(&x.data); err != nil || !ok || x.data == nil {
		return 0
	}
	v := x.ToInt()
	if v < 0 {
		return 0
	}
	return v
}

//只有唯一索引冲突才值得重试, 其他存储错误原样上抛
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if me, ok := err.(*mysql.MySQLError); ok {
		return me.Number == 1062
	}
	return strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func createParticipation(p *ContestParticipation) error {
	if num, err := engine.InsertOne(p); err != nil || num != 1 {
		if err == nil {
			err = errors.New("操作失败")
		}
		return err
	}
	putParticipationCache(p)
	return nil
}

//加入比赛.
//进行中: 出题人观战, 其他人正式参赛, 已结束的正式参与退化为观战;
//已结束: 每次都新开一个虚拟重赛, 编号取已有最大值+1, 撞唯一索引就重算重试
//(同一用户并发加入只会有一个赢家, 重试次数期望是常数, 不设上限)
func JoinContest(cd *ContestDao, ud *UserDao, accessCode string) (*ContestParticipation, error) {
	uid := ud.GetID()
	cid := cd.GetID()
	now := time.Now()

	//已经在别的比赛中则拒绝, 在本场比赛中则直接复用
	if cur := ud.GetCurrentContest(); cur != 0 {
		p := GetParticipationByID(cur)
		if p != nil && p.ContestID == cid {
			return p, nil
		}
		return nil, ErrAlreadyInContest
	}

	if err := GetSelfAll(cd); err != nil {
		return nil, err
	}
	c := cd.Contest
	isEditor := c.IsEditor(uid)
	isSuperAdmin := ud.IsSuperAdmin()
	canEdit := isEditor || isSuperAdmin

	if !c.CanJoin(now) && !isEditor && !c.Ended(now) {
		return nil, ErrNotOngoing
	}
	if !isSuperAdmin && c.IsBanned(uid) {
		return nil, ErrBanned
	}

	//访问码: 不能编辑比赛且访问码非空且对不上时需要
	requiredAccessCode := !canEdit && c.AccessCode != "" && accessCode != c.AccessCode

	var p *ContestParticipation
	if c.Ended(now) {
		if requiredAccessCode {
			return nil, ErrAccessDenied
		}
		for {
			vid := maxVirtual(cid, uid) + 1
			if vid < 1 {
				vid = 1
			}
			p = &ContestParticipation{
				ContestID: cid,
				UserID:    uid,
				Virtual:   vid,
				RealStart: now,
			}
			if err := createParticipation(p); err != nil {
				if isDuplicateKeyErr(err) {
					continue //并发加入撞了唯一索引, 重算编号
				}
				return nil, err
			}
			break
		}
	} else {
		target := model.LIVE
		if isEditor {
			target = model.SPECTATE
		}
		p = GetParticipation(cid, uid, target)
		if p == nil {
			if requiredAccessCode {
				return nil, ErrAccessDenied
			}
			p = &ContestParticipation{
				ContestID: cid,
				UserID:    uid,
				Virtual:   target,
				RealStart: now,
			}
			if err := createParticipation(p); err != nil {
				if !isDuplicateKeyErr(err) {
					return nil, err
				}
				//并发下别的请求刚创建了, 直接取
				if p = GetParticipation(cid, uid, target); p == nil {
					return nil, err
				}
			} else if target == model.LIVE {
				//首次正式参赛计入参赛数
				UpdateCols(ud, common.H{"contest_count": OneCol(ud, "contest_count").ToUint() + 1})
			}
		} else if p.Ended(c, now) {
			//窗口已过的正式参与退化为观战.
			//目前LIVE窗口与比赛同时结束, 这个分支走不到;
			//留给以后单独限时的参与方式做降级路径
			sp := GetParticipation(cid, uid, model.SPECTATE)
			if sp == nil {
				sp = &ContestParticipation{
					ContestID: cid,
					UserID:    uid,
					Virtual:   model.SPECTATE,
					RealStart: now,
				}
				if err := createParticipation(sp); err != nil {
					if !isDuplicateKeyErr(err) {
						return nil, err
					}
					if sp = GetParticipation(cid, uid, model.SPECTATE); sp == nil {
						return nil, err
					}
				}
			}
			p = sp
		}
	}

	if err := ud.SetCurrentContest(p.ID); err != nil {
		return nil, err
	}
	UpdateUserCount(cid)
	return p, nil
}

//退出比赛: 只清掉当前比赛指针, 参与记录保留
func LeaveContest(cd *ContestDao, ud *UserDao) error {
	cur := ud.GetCurrentContest()
	if cur == 0 {
		return ErrNotInContest
	}
	p := GetParticipationByID(cur)
	if p == nil || p.ContestID != cd.GetID() {
		return ErrNotInContest
	}
	return ud.ClearCurrentContest()
}

//删除参与记录时把用户的当前比赛指针置空(相当于外键set null)
func DeleteParticipation(p *ContestParticipation) error {
	ud := &UserDao{ID: p.UserID}
	if ud.GetCurrentContest() == p.ID {
		ud.ClearCurrentContest()
	}
	if p.IsLive() {
		rdb.ZRem(ctx, getParticipationZsetKey(p.ContestID), p.UserID)
		rdb.HDel(ctx, getParticipationHashKey(p.ContestID), strconv.FormatInt(p.UserID, 10))
	}
	if _, err := engine.ID(p.ID).Delete(&ContestParticipation{}); err != nil {
		return err
	}
	UpdateUserCount(p.ContestID)
	return nil
}

func DisqualifyParticipation(p *ContestParticipation, flag bool) error {
	p.IsDisqualified = flag
	if err := UpdateColsBySql(p.GetTableName(), p.ID, common.H{"is_disqualified": flag}); err != nil {
		return err
	}
	putParticipationCache(p)
	return nil
}

//正式参与按 (未取消资格, 分数降序, 总用时升序, tiebreaker升序) 排序
func rankLess(a, b *ContestParticipation) bool {
	if a.IsDisqualified != b.IsDisqualified {
		return !a.IsDisqualified
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Cumtime != b.Cumtime {
		return a.Cumtime < b.Cumtime
	}
	return a.Tiebreaker < b.Tiebreaker
}

func rankEqual(a, b *ContestParticipation) bool {
	return a.IsDisqualified == b.IsDisqualified && a.Score == b.Score &&
		a.Cumtime == b.Cumtime && a.Tiebreaker == b.Tiebreaker
}

//取全部正式参与并排好序
func GetLiveParticipations(cid int64) []ContestParticipation {
	hkey := participationCache(cid)
	mp, _ := rdb.HGetAll(ctx, hkey).Result()
	ps := make([]ContestParticipation, 0, len(mp))
	for _, js := range mp {
		p := ContestParticipation{}
		if err := json.Unmarshal([]byte(js), &p); err == nil {
			ps = append(ps, p)
		}
	}
	sort.Slice(ps, func(i, j int) bool {
		if rankEqual(&ps[i], &ps[j]) {
			return ps[i].UserID < ps[j].UserID //同名次内固定展示顺序
		}
		return rankLess(&ps[i], &ps[j])
	})
	return ps
}

//名次: 并列共享名次, 下一个不同成绩的名次 = 前面严格更优的人数+1
func CompetitionRanks(ps []ContestParticipation) []int {
	ranks := make([]int, len(ps))
	for i := range ps {
		if i > 0 && rankEqual(&ps[i], &ps[i-1]) {
			ranks[i] = ranks[i-1]
		} else {
			ranks[i] = i + 1
		}
	}
	return ranks
}

//一行排名数据, 查不到的格子给"???", 不让整个榜挂掉
func MakeRankingProfile(c *Contest, p *ContestParticipation, cps []ContestProblem) common.H {
	format := GetFormat(c.Format)
	ud := &UserDao{ID: p.UserID}
	cells := make([]common.H, len(cps))
	for i := range cps {
		cells[i] = format.DisplayUserProblem(p, &cps[i])
	}
	return common.H{
		"user_id":         p.UserID,
		"username":        ud.GetName(),
		"score":           p.Score,
		"cumtime":         p.Cumtime,
		"tiebreaker":      p.Tiebreaker,
		"is_disqualified": p.IsDisqualified,
		"virtual":         p.Virtual,
		"problem_cells":   cells,
		"result_cell":     format.DisplayParticipationResult(p),
	}
}

//完整排名
func GetAllRankData(cid int64) []common.H {
	cd := &ContestDao{ID: cid}
	if err := GetSelfAll(cd); err != nil {
		return nil
	}
	cps := GetContestProblems(cid)
	ps := GetLiveParticipations(cid)
	ranks := CompetitionRanks(ps)
	data := make([]common.H, len(ps))
	for i := range ps {
		info := MakeRankingProfile(cd.Contest, &ps[i], cps)
		info["rank"] = ranks[i]
		data[i] = info
	}
	return data
}

func cproblemCache(cid int64) string {
	lkey := getCproblemListKey(cid)
	if rdb.Exists(ctx, lkey).Val() <= 0 {
		cp := make([]ContestProblem, 0)
		engine.Where("contest_id = ?", cid).Asc("sequence").Find(&cp)
		if len(cp) == 0 {
			return lkey
		}
		js := make([]interface{}, len(cp))
		for i, item := range cp {
			js[i], _ = json.Marshal(item)
		}
		rdb.RPush(ctx, lkey, js...)
		rdb.Expire(ctx, lkey, CONTEST_REDIS_EXPIRE)
	}
	return lkey
}

//按展示顺序取比赛题目
func GetContestProblems(cid int64) []ContestProblem {
	cproblemCache(cid)
	data := rdb.LRange(ctx, getCproblemListKey(cid), 0, -1).Val()
	cps := make([]ContestProblem, len(data))
	for i, item := range data {
		json.Unmarshal([]byte(item), &cps[i])
	}
	return cps
}

func GetContestProblem(id int64) *ContestProblem {
	cp := &ContestProblem{}
	if has, err := engine.ID(id).Get(cp); err != nil || !has {
		return nil
	}
	return cp
}

func AddContestProblems(cid int64, cps []ContestProblem) error {
	for i := range cps {
		cps[i].ContestID = cid
	}
	if _, err := engine.Insert(cps); err != nil {
		return err
	}
	rdb.Del(ctx, getCproblemListKey(cid))
	return nil
}

func DeleteContestProblems(cid int64) error {
	if _, err := engine.Exec("delete from contest_problem where contest_id = ?", cid); err != nil {
		return err
	}
	rdb.Del(ctx, getCproblemListKey(cid))
	return nil
}
