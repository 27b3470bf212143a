package dao

import (
	"HappyEducation/model"
	"testing"
	"time"

	"github.com/go-xorm/xorm"
	_ "github.com/mattn/go-sqlite3"
	"xorm.io/core"
)

//sqlite内存库 + miniredis, 覆盖依赖存储的dao路径
func setupStore(t *testing.T) {
	setupRedis(t)
	e, err := xorm.NewEngine("sqlite3", ":memory:")
	if err != nil {
		t.Fatal("打开sqlite失败:", err)
	}
	e.SetMapper(core.GonicMapper{})
	e.SetMaxOpenConns(1) //内存库随连接销毁, 只留一个连接
	if err := e.Sync2(new(model.User), new(model.Organization), new(model.Level),
		new(model.Problem), new(model.Answer), new(model.Contest),
		new(model.ContestProblem), new(model.ContestParticipation),
		new(model.Submission), new(model.SubmissionProblem)); err != nil {
		t.Fatal("建表失败:", err)
	}
	engine = e
	t.Cleanup(func() { e.Close() })
}

func makeTestUser(t *testing.T, name string) *UserDao {
	ud := &UserDao{User: &User{Username: name, Password: "x", Email: name + "@test.cn"}}
	if err := ud.Create(); err != nil {
		t.Fatal("创建用户失败:", err)
	}
	return ud
}

//时间都留足余量, 避免缓存层的时区折算影响窗口判断
func makeTestContest(t *testing.T, key string, begin, end time.Time) *ContestDao {
	cd := &ContestDao{Contest: &Contest{Key: key, Title: "测试赛", Begin: begin, End: end, Format: "OI"}}
	if err := cd.Create(); err != nil {
		t.Fatal("创建比赛失败:", err)
	}
	t.Cleanup(func() { RemoveContest(cd.GetID()) })
	return cd
}

func TestJoinContestVirtualReplay(t *testing.T) {
	setupStore(t)
	now := time.Now()
	cd := makeTestContest(t, "c-ended", now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	ud := makeTestUser(t, "replayer")

	p1, err := JoinContest(cd, ud, "")
	if err != nil || p1.Virtual != 1 {
		t.Fatal("赛后第一次加入应为虚拟重赛1:", err, p1)
	}
	if ud.GetCurrentContest() != p1.ID {
		t.Fatal("当前比赛指针未指向参与记录")
	}

	//还在本场比赛中时重复加入直接复用
	p2, err := JoinContest(cd, ud, "")
	if err != nil || p2.ID != p1.ID {
		t.Fatal("重复加入应复用当前参与:", err)
	}

	if err := LeaveContest(cd, ud); err != nil {
		t.Fatal("退出失败:", err)
	}
	p3, err := JoinContest(cd, ud, "")
	if err != nil || p3.Virtual != 2 {
		t.Fatal("赛后第二次加入应为虚拟重赛2:", err, p3)
	}

	//卡在别的比赛里时不允许加入新比赛
	other := makeTestContest(t, "c-other", now.Add(-24*time.Hour), now.Add(24*time.Hour))
	if _, err := JoinContest(other, ud, ""); err != ErrAlreadyInContest {
		t.Fatal("在别的比赛中应被拒绝:", err)
	}
}

func TestJoinContestAccessControl(t *testing.T) {
	setupStore(t)
	now := time.Now()
	editor := makeTestUser(t, "editor")
	banned := makeTestUser(t, "banned")
	player := makeTestUser(t, "player")
	cd := &ContestDao{Contest: &Contest{
		Key:    "c-code",
		Title:  "带访问码的比赛",
		Begin:  now.Add(-24 * time.Hour),
		End:    now.Add(24 * time.Hour),
		Format: "OI",

		AccessCode:  "open sesame",
		EditorIDs:   []int64{editor.GetID()},
		BannedUsers: []int64{banned.GetID()},
	}}
	if err := cd.Create(); err != nil {
		t.Fatal("创建比赛失败:", err)
	}
	t.Cleanup(func() { RemoveContest(cd.GetID()) })

	if _, err := JoinContest(cd, player, "wrong"); err != ErrAccessDenied {
		t.Fatal("访问码错误应被拒绝:", err)
	}
	p, err := JoinContest(cd, player, "open sesame")
	if err != nil || !p.IsLive() {
		t.Fatal("访问码正确应正式参赛:", err)
	}
	if OneCol(player, "contest_count").ToUint() != 1 {
		t.Fatal("首次正式参赛应计入参赛数")
	}

	if _, err := JoinContest(cd, banned, "open sesame"); err != ErrBanned {
		t.Fatal("被拉黑用户应被拒绝:", err)
	}

	//出题人免访问码, 以观战身份加入
	ep, err := JoinContest(cd, editor, "")
	if err != nil || !ep.IsSpectate() {
		t.Fatal("出题人应以观战身份加入:", err)
	}

	//未开始的比赛谁都进不去
	soon := makeTestContest(t, "c-soon", now.Add(24*time.Hour), now.Add(48*time.Hour))
	if _, err := JoinContest(soon, banned, ""); err != ErrNotOngoing {
		t.Fatal("未开始的比赛应被拒绝:", err)
	}
}

func TestJoinContestStorageError(t *testing.T) {
	setupStore(t)
	now := time.Now()
	cd := makeTestContest(t, "c-down", now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	ud := makeTestUser(t, "unlucky")

	//存储挂掉时虚拟编号分配必须立刻报错, 而不是原地重试
	engine.Close()
	if _, err := JoinContest(cd, ud, ""); err == nil {
		t.Fatal("存储错误应当直接返回")
	}
}
