package common

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"math/rand"
	"os"
)

const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func RandString(n int) string { //生成长度为n的包含字母的字符串
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[rand.Intn(len(letterBytes))]
	}
	return string(b)
}

func GetMD5OfStr(str string) string { //获取一个字符串的MD5
	h := md5.New()
	h.Write([]byte(str))
	return hex.EncodeToString(h.Sum(nil))
}

func JsonFileToMap(path string) map[string]interface{} { //将一个json文件转化成map
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()
	bt, err := ioutil.ReadAll(file)
	if err != nil {
		return nil
	}
	var mp map[string]interface{}
	if err := json.Unmarshal(bt, &mp); err != nil {
		return nil
	}
	return mp
}

func GetContent(path string) (string, error) { //读取文件内容
	if yes, _ := PathExists(path); !yes {
		return "", nil
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	bt, err := ioutil.ReadAll(file)
	if err != nil {
		return "", nil
	}
	return string(bt), err
}

func PathExists(path string) (bool, error) { //判断文件是否存在
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
