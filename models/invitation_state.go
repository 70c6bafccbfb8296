package models

import "errors"

// InvitationState davet kaydının yaşam döngüsündeki durumunu tanımlar.
type InvitationState string

const (
	// StatePendingResponse organizatörün gönderdiği davet, davetlinin yanıtını bekliyor.
	StatePendingResponse     InvitationState = "pending_response"
	// StatePendingApproval kullanıcının kendi başvurusu, organizatörün onayını bekliyor.
	StatePendingApproval     InvitationState = "pending_approval"
	StateConfirmed           InvitationState = "confirmed"
	StateRejectedByInvitee   InvitationState = "rejected_by_invitee"
	StateRejectedByOrganizer InvitationState = "rejected_by_organizer"
)

// AllInvitationStates kapalı durum kümesi.
var AllInvitationStates = []InvitationState{
	StatePendingResponse,
	StatePendingApproval,
	StateConfirmed,
	StateRejectedByInvitee,
	StateRejectedByOrganizer,
}

// InvitationAction durum makinesindeki dört geçiş operasyonu.
type InvitationAction string

const (
	ActionAccept            InvitationAction = "accept"
	ActionReject            InvitationAction = "reject"
	ActionApprove           InvitationAction = "approve"
	ActionRejectByOrganizer InvitationAction = "reject_by_organizer"
)

// TransitionRule bir geçişin kaynak/hedef durumunu ve geçişi hangi tarafın
// yapabileceğini tanımlar.
type TransitionRule struct {
	From InvitationState
	To   InvitationState
	// ByOrganizer true ise geçişi etkinliğin organizatörü yapar,
	// false ise davetlinin kendisi.
	ByOrganizer bool
}

// transitions geçiş tablosu. Confirmed ve iki Rejected durumu terminaldir;
// tabloda kaynak olarak yer almazlar.
var transitions = map[InvitationAction]TransitionRule{
	ActionAccept:            {From: StatePendingResponse, To: StateConfirmed, ByOrganizer: false},
	ActionReject:            {From: StatePendingResponse, To: StateRejectedByInvitee, ByOrganizer: false},
	ActionApprove:           {From: StatePendingApproval, To: StateConfirmed, ByOrganizer: true},
	ActionRejectByOrganizer: {From: StatePendingApproval, To: StateRejectedByOrganizer, ByOrganizer: true},
}

// ErrUnknownAction geçiş tablosunda olmayan bir operasyon istendi.
var ErrUnknownAction = errors.New("tanımsız davet operasyonu")

// TransitionFor operasyonun geçiş kuralını döndürür.
func TransitionFor(action InvitationAction) (TransitionRule, error) {
	rule, ok := transitions[action]
	if !ok {
		return TransitionRule{}, ErrUnknownAction
	}
	return rule, nil
}

// IsTerminal durumdan çıkan geçiş var mı?
func (s InvitationState) IsTerminal() bool {
	switch s {
	case StateConfirmed, StateRejectedByInvitee, StateRejectedByOrganizer:
		return true
	}
	return false
}

var invitationStateLabels = map[InvitationState]string{
	StatePendingResponse:     "Yanıt Bekliyor",
	StatePendingApproval:     "Onay Bekliyor",
	StateConfirmed:           "Onaylandı",
	StateRejectedByInvitee:   "Reddedildi",
	StateRejectedByOrganizer: "Organizatör Tarafından Reddedildi",
}

var invitationStateColors = map[InvitationState]string{
	StatePendingResponse:     "bg-yellow-100 text-yellow-800",
	StatePendingApproval:     "bg-blue-100 text-blue-800",
	StateConfirmed:           "bg-green-100 text-green-800",
	StateRejectedByInvitee:   "bg-red-100 text-red-800",
	StateRejectedByOrganizer: "bg-red-100 text-red-800",
}

// Label durumun görünen adını döndürür.
func (s InvitationState) Label() string {
	if label, ok := invitationStateLabels[s]; ok {
		return label
	}
	return "Bilinmiyor"
}

// ColorClass durum rozetinin CSS sınıfını döndürür.
func (s InvitationState) ColorClass() string {
	if color, ok := invitationStateColors[s]; ok {
		return color
	}
	return "bg-gray-100 text-gray-800"
}
