package dao

import (
	"HappyEducation/common"
	"HappyEducation/model"
	"encoding/json"
	"strconv"
	"time"
)

const (
	PROBLEM_REDIS_EXPIRE = 0
	PROBLEM_HASH_KEY     = "problem_hash(code:id)"
	ANSWER_REDIS_EXPIRE  = time.Hour * 24
)

type (
	Problem = model.Problem
	Answer  = model.Answer
	Level   = model.Level
)

type ProblemDao struct {
	ID      int64
	Code    string
	Problem *Problem
}

func problemInitRedis() {
	problems := make([]Problem, 0)
	engine.Find(&problems)
	for idx := range problems {
		pd := &ProblemDao{Problem: &problems[idx]}
		PutToRedis(pd)
	}
}

func (pd *ProblemDao) GetTableName() string {
	return "problem"
}
func (pd *ProblemDao) GetRedisExpire() time.Duration {
	return PROBLEM_REDIS_EXPIRE
}
func (pd *ProblemDao) GetSelf() interface{} {
	if pd.Problem == nil {
		pd.Problem = &Problem{}
	}
	return pd.Problem
}
func (pd *ProblemDao) GetID() int64 {
	if pd.ID == 0 {
		if pd.Problem != nil && pd.Problem.ID != 0 {
			pd.ID = pd.Problem.ID
		} else {
			code := pd.Code
			if code == "" && pd.Problem != nil {
				code = pd.Problem.Code
			}
			if code != "" {
				if rdb.HExists(ctx, PROBLEM_HASH_KEY, code).Val() {
					pd.ID = common.StrToInt64(rdb.HGet(ctx, PROBLEM_HASH_KEY, code).Val())
				} else {
					x := new(Col)
					if ok, err := engine.SQL("select id from problem where code = ?", code).Get(&x.data); err == nil && ok {
						pd.ID = x.ToInt64()
					}
				}
			}
		}
	}
	return pd.ID
}
func (pd *ProblemDao) GetRedisKey() string {
	return pd.GetTableName() + "_" + strconv.FormatInt(pd.GetID(), 10)
}

func (pd *ProblemDao) GetCode() string {
	if pd.Code == "" {
		if pd.Problem != nil && pd.Problem.Code != "" {
			pd.Code = pd.Problem.Code
		} else if pd.ID != 0 || (pd.Problem != nil && pd.Problem.ID != 0) {
			pd.Code = OneCol(pd, "code").ToString()
		}
	}
	return pd.Code
}

func (pd *ProblemDao) BeforePutToRedis() error {
	rdb.HSet(ctx, PROBLEM_HASH_KEY, pd.GetCode(), pd.GetID())
	return nil
}
func (pd *ProblemDao) BeforeDelete() error {
	rdb.HDel(ctx, PROBLEM_HASH_KEY, pd.GetCode())
	rdb.Del(ctx, getAnswerListKey(pd.GetID()))
	return nil
}
func (pd *ProblemDao) Create() error {
	return Create(pd)
}
func (pd *ProblemDao) Delete() error {
	if _, err := engine.Exec("delete from answer where problem_id = ?", pd.GetID()); err != nil {
		return err
	}
	return Delete(pd)
}
func (pd *ProblemDao) Update(mp common.H) error {
	return UpdateCols(pd, mp)
}

/*
	p_{id}_answer_list: 选项json按录入顺序
*/

func getAnswerListKey(pid int64) string {
	return "p_" + strconv.FormatInt(pid, 10) + "_answer_list"
}

func answerCache(pid int64) string {
	lkey := getAnswerListKey(pid)
	if rdb.Exists(ctx, lkey).Val() <= 0 {
		ans := make([]Answer, 0)
		engine.Where("problem_id = ?", pid).Asc("sequence").Find(&ans)
		if len(ans) == 0 {
			return lkey
		}
		js := make([]interface{}, len(ans))
		for i, item := range ans {
			js[i], _ = json.Marshal(item)
		}
		rdb.RPush(ctx, lkey, js...)
		rdb.Expire(ctx, lkey, ANSWER_REDIS_EXPIRE)
	}
	return lkey
}

//按录入顺序取选项
func GetAnswers(pid int64) []Answer {
	lkey := answerCache(pid)
	data := rdb.LRange(ctx, lkey, 0, -1).Val()
	ans := make([]Answer, len(data))
	for i, item := range data {
		json.Unmarshal([]byte(item), &ans[i])
	}
	return ans
}

//展示用: 按种子打乱后标号 A,B,C,... 同一个种子必须给出同一份选项单
func GetAnswerChoices(pid int64, seed int64) []common.H {
	ans := GetAnswers(pid)
	order := common.ShuffledOrder(len(ans), seed)
	choices := make([]common.H, len(ans))
	for pos, idx := range order {
		choices[pos] = common.H{
			"label":       common.LabelOf(pos),
			"description": ans[idx].Description,
		}
	}
	return choices
}

//评判用: 按同一个种子还原提交标号指向的选项
func GetAnswerByLabel(pid int64, seed int64, label string) *Answer {
	ans := GetAnswers(pid)
	pos := common.IndexOfLabel(label)
	if pos < 0 || pos >= len(ans) {
		return nil
	}
	order := common.ShuffledOrder(len(ans), seed)
	return &ans[order[pos]]
}

//填空题的标准答案(取第一个正确项)
func GetCorrectAnswer(pid int64) *Answer {
	for _, a := range GetAnswers(pid) {
		if a.IsCorrect {
			tmp := a
			return &tmp
		}
	}
	return nil
}

//整体替换选项, 录入时由后台保证单选题有且只有一个正确项
func ReplaceAnswers(pid int64, ans []Answer) error {
	if _, err := engine.Exec("delete from answer where problem_id = ?", pid); err != nil {
		return err
	}
	for i := range ans {
		ans[i].ID = 0
		ans[i].ProblemID = pid
		ans[i].Sequence = i
	}
	if len(ans) > 0 {
		if _, err := engine.Insert(ans); err != nil {
			return err
		}
	}
	rdb.Del(ctx, getAnswerListKey(pid))
	return nil
}

func GetLevels() []Level {
	levels := make([]Level, 0)
	engine.Asc("id").Find(&levels)
	return levels
}

func NewLevel(l *Level) error {
	if num, err := engine.InsertOne(l); err != nil || num != 1 {
		return err
	}
	return nil
}

//按级展示题库, limit为0时不限制
func GetProblemsOfLevel(lid int64, onlyPublic bool, limit int) []Problem {
	ps := make([]Problem, 0)
	s := engine.Where("level_id = ?", lid)
	if onlyPublic {
		s = s.And("is_public = ?", true)
	}
	if limit > 0 {
		s = s.Limit(limit)
	}
	s.Asc("code").Find(&ps)
	return ps
}

func SearchProblems(l, r int64, rules []string, values []interface{}) (int64, []Problem) {
	ps := make([]Problem, 0)
	var total int64
	if len(rules) > 0 {
		engine.Desc("id").Where(ToSqlConditions(rules), values...).Limit(int(r-l+1), int(l-1)).Find(&ps)
		total, _ = engine.Where(ToSqlConditions(rules), values...).Count(new(Problem))
	} else {
		engine.Desc("id").Limit(int(r-l+1), int(l-1)).Find(&ps)
		total, _ = engine.Count(new(Problem))
	}
	return total, ps
}
