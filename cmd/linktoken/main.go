package main

// 手动生成绑定 link token 的小工具，联调小程序时使用
// 用法: linktoken -uid 42

import (
	"flag"
	"fmt"
	"os"

	"AssignReminders/pkg/token"
)

func main() {
	uid := flag.Int64("uid", 0, "LMS user id")
	flag.Parse()

	if *uid <= 0 {
		fmt.Fprintln(os.Stderr, "usage: linktoken -uid <user id>")
		os.Exit(1)
	}

	signed, err := token.MintLinkToken(*uid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to mint link token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(signed)
}
