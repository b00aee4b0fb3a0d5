package booking

// Rejection は予約受付が拒否された理由
// 値は API のエラーコードとしてそのまま使われる
type Rejection string

const (
	RejectionNone          Rejection = ""
	RejectionValidation    Rejection = "VALIDATION_ERROR"
	RejectionEventNotFound Rejection = "EVENT_NOT_FOUND"
	RejectionEventFull     Rejection = "EVENT_FULL"
	RejectionAlreadyBooked Rejection = "ALREADY_BOOKED"
	RejectionInternal      Rejection = "INTERNAL_ERROR"
)

// OutcomeCreated は作成成功時のコード（メトリクスのラベル用）
const OutcomeCreated = "CREATED"

// Outcome は予約受付の結果
// Created のときだけ Booking が設定される。Err は拒否の原因（ログ用）
type Outcome struct {
	Booking   *Booking
	Rejection Rejection
	Err       error
}

// Created は作成成功の結果を返す
func Created(b *Booking) Outcome {
	return Outcome{Booking: b}
}

// Rejected は拒否の結果を返す
func Rejected(r Rejection, err error) Outcome {
	return Outcome{Rejection: r, Err: err}
}

// IsCreated は予約が確定したかどうかを返す
func (o Outcome) IsCreated() bool {
	return o.Rejection == RejectionNone && o.Booking != nil
}

// IsInternal は業務上の拒否ではなく内部エラーかどうかを返す
func (o Outcome) IsInternal() bool {
	return o.Rejection == RejectionInternal
}

// Code は結果を表す文字列を返す
func (o Outcome) Code() string {
	if o.IsCreated() {
		return OutcomeCreated
	}
	return string(o.Rejection)
}
