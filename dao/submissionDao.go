package dao

import (
	"HappyEducation/common"
	"HappyEducation/model"
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"
	"time"
)

type (
	Submission        = model.Submission
	SubmissionProblem = model.SubmissionProblem
)

var (
	ErrDuplicateSubmission = errors.New("答卷已经提交过, 不能重复作答")
	ErrUnansweredProblem   = errors.New("答卷里有没见过的题目")
)

//同一份答卷的选项乱序种子按题目区分, 展示和评判必须用同一个推导
func ProblemSeed(seed, pid int64) int64 {
	return seed ^ pid
}

//一次参与对应一份答卷, 取不到就带上新种子创建
func GetOrCreateSubmission(p *ContestParticipation) (*Submission, error) {
	sub := &Submission{}
	if has, err := engine.Where("participation_id = ?", p.ID).Get(sub); err != nil {
		return nil, err
	} else if has {
		return sub, nil
	}
	sub = &Submission{
		ParticipationID: p.ID,
		ContestID:       p.ContestID,
		UserID:          p.UserID,
		Result:          model.RESULT_PENDING,
		ShuffleSeed:     rand.Int63(),
	}
	if num, err := engine.InsertOne(sub); err != nil || num != 1 {
		//并发的两个取卷请求撞了, 直接取已有的
		if has, err2 := engine.Where("participation_id = ?", p.ID).Get(sub); err2 == nil && has {
			return sub, nil
		}
		if err == nil {
			err = errors.New("创建答卷失败")
		}
		return nil, err
	}
	return sub, nil
}

func GetSubmission(id int64) *Submission {
	sub := &Submission{}
	if has, err := engine.ID(id).Get(sub); err != nil || !has {
		return nil
	}
	return sub
}

func GetSubmissionProblems(subID int64) []SubmissionProblem {
	sps := make([]SubmissionProblem, 0)
	engine.Where("submission_id = ?", subID).Find(&sps)
	return sps
}

//每题的作答是否正确: 单选按种子还原标号, 填空规整化后对比标准答案
func judgeOne(pd *ProblemDao, seed int64, output string) bool {
	GetSelfAll(pd)
	switch pd.Problem.AnswerType {
	case model.ANSWER_TYPE_MC:
		a := GetAnswerByLabel(pd.GetID(), ProblemSeed(seed, pd.GetID()), output)
		return a != nil && a.IsCorrect
	case model.ANSWER_TYPE_FILL:
		correct := GetCorrectAnswer(pd.GetID())
		return correct != nil && common.SameFillAnswer(output, correct.Description)
	}
	return false
}

//提交整份答卷并评判, 只允许评判一次.
//answers: 比赛题目id -> 作答内容(单选为标号, 填空为文本), 没答的题可以缺省
func SubmitAnswers(c *Contest, p *ContestParticipation, sub *Submission, answers map[int64]string) error {
	if sub.Result != model.RESULT_PENDING {
		return ErrDuplicateSubmission
	}
	if cnt, _ := engine.Where("submission_id = ?", sub.ID).Count(&SubmissionProblem{}); cnt > 0 {
		return ErrDuplicateSubmission
	}

	cps := GetContestProblems(p.ContestID)
	known := make(map[int64]*ContestProblem, len(cps))
	for i := range cps {
		known[cps[i].ID] = &cps[i]
	}
	for cpid := range answers {
		if _, ok := known[cpid]; !ok {
			return ErrUnansweredProblem
		}
	}

	//先落作答记录, 再评判
	now := time.Now()
	sps := make([]SubmissionProblem, 0, len(answers))
	for cpid, output := range answers {
		sps = append(sps, SubmissionProblem{
			SubmissionID:     sub.ID,
			ContestProblemID: cpid,
			Output:           output,
		})
	}
	if len(sps) > 0 {
		if _, err := engine.Insert(sps); err != nil {
			return ErrDuplicateSubmission //并发重复提交会撞唯一索引
		}
	}

	earned := make(map[string]uint, len(cps))
	full, zero := true, true
	for i := range cps {
		cp := &cps[i]
		pts := uint(0)
		if output, ok := answers[cp.ID]; ok {
			pd := &ProblemDao{ID: cp.ProblemID}
			if judgeOne(pd, sub.ShuffleSeed, output) {
				pts = cp.Points
			}
		}
		earned[strconv.FormatInt(cp.ID, 10)] = pts
		if pts < cp.Points {
			full = false
		}
		if pts > 0 {
			zero = false
		}
	}

	result := model.RESULT_PARTIAL
	if full {
		result = model.RESULT_AC
	} else if zero {
		result = model.RESULT_WA
	}
	sub.Result, sub.Time = result, now
	if err := UpdateColsBySql(sub.GetTableName(), sub.ID, common.H{"result": result, "time": now}); err != nil {
		return err
	}

	//按赛制回写成绩
	GetFormat(c.Format).UpdateParticipation(c, p, now, earned, cps)
	status, _ := json.Marshal(p.ProblemStatus)
	if err := UpdateColsBySql(p.GetTableName(), p.ID, common.H{
		"score":          p.Score,
		"cumtime":        p.Cumtime,
		"tiebreaker":     p.Tiebreaker,
		"problem_status": string(status),
	}); err != nil {
		return err
	}
	putParticipationCache(p)
	return nil
}

func SearchSubmissions(l, r int64, rules []string, values []interface{}) (int64, []Submission) {
	subs := make([]Submission, 0)
	var total int64
	if len(rules) > 0 {
		engine.Desc("id").Where(ToSqlConditions(rules), values...).Limit(int(r-l+1), int(l-1)).Find(&subs)
		total, _ = engine.Where(ToSqlConditions(rules), values...).Count(new(Submission))
	} else {
		engine.Desc("id").Limit(int(r-l+1), int(l-1)).Find(&subs)
		total, _ = engine.Count(new(Submission))
	}
	return total, subs
}
