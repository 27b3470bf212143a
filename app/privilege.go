package app

type PrivilegeType = uint64 //最多细分64个权限

const (
	ScanPrivateProblem PrivilegeType = 1 << iota
	CreateProblem
	UpdateProblem
	DeleteProblem

	CreateContest
	UpdateContest
	DeleteContest
	ScanContestSubmission
	DisqualifyUser

	ScanUserInfo
	SetUserPrivilege
	ManageOrganization
)

var PrivilegeDesc []string = []string{
	"查看私有题库题面", //1
	"创建题目",     //2
	"修改题目",     //4
	"删除题目",     //8

	"创建比赛",    //16
	"修改比赛",    //32
	"删除比赛",    //64
	"查看比赛的答卷", //128
	"取消参赛资格",  //256

	"查看用户信息", //512
	"设置用户权限", //1024
	"管理组织",   //2048
}
