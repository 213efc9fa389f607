package report

import (
	"fmt"
	"time"
)

// PaymentNotice renders the monthly expense-claim reminder. The subject uses
// the ROC calendar year; the deadline is the 5th of the next month, except
// December, which closes on the 31st.
func PaymentNotice(today time.Time) (subject, htmlBody string) {
	rocYear := today.Year() - 1911
	month := int(today.Month())

	var deadline string
	if month == 12 {
		deadline = fmt.Sprintf("%d年12月31日", rocYear)
	} else {
		deadline = fmt.Sprintf("%d年%d月5日", rocYear, month+1)
	}

	subject = fmt.Sprintf("【通知】%d年%d月款項申請(至%s前截止)", rocYear, month, deadline)
	htmlBody = fmt.Sprintf(`<div style="font-family: 'Microsoft JhengHei', sans-serif;">
<p>Dear All,</p>
<p>%d年%d月份尚未請款的個人費用(代墊款、差旅費等)及廠商款項申請,<br>
請於%s前送至會計處, 若有來不及請款的同仁請先與我們聯絡,</p>
<p><b>即日起不受理逾期款項延後請款, 還請各位幫忙配合, 感謝!!</b></p>
<p><b>請款注意事項：</b></p>
<p>發票抬頭：各請款公司別的公司名稱及統一編號請注意不要打錯</p>
<p>請款憑證金額及內容請先計算核對</p>
</div>`, rocYear, month, deadline)
	return subject, htmlBody
}
