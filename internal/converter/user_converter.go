package converter

import (
	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/domain/entity"
)

// UserToResponse converts a User entity (with optional preloaded profiles)
// to a UserResponse DTO.
func UserToResponse(user *entity.User, role string) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.DoctorProfile != nil {
		response.DoctorProfile = &dto.DoctorProfileResponse{
			LicenseNumber:  user.DoctorProfile.LicenseNumber,
			Specialization: user.DoctorProfile.Specialization,
			Biography:      user.DoctorProfile.Biography,
		}
	}

	if user.PatientProfile != nil {
		profile := &dto.PatientProfileResponse{
			HealthStatus: user.PatientProfile.HealthStatus,
			PhoneNumber:  user.PatientProfile.PhoneNumber,
			Gender:       user.PatientProfile.Gender,
			Address:      user.PatientProfile.Address,
		}
		if !user.PatientProfile.DateOfBirth.IsZero() {
			profile.DateOfBirth = user.PatientProfile.DateOfBirth.Format("2006-01-02")
		}
		response.PatientProfile = profile
	}

	return response
}

// DoctorsToListResponse converts doctor users to the public listing patients
// browse when booking.
func DoctorsToListResponse(doctors []entity.User) *dto.DoctorListResponse {
	responses := make([]dto.DoctorResponse, 0, len(doctors))
	for _, doctor := range doctors {
		resp := dto.DoctorResponse{
			ID:       doctor.ID,
			FullName: doctor.FullName,
		}
		if doctor.DoctorProfile != nil {
			resp.Specialization = doctor.DoctorProfile.Specialization
			resp.Biography = doctor.DoctorProfile.Biography
		}
		responses = append(responses, resp)
	}
	return &dto.DoctorListResponse{
		Doctors: responses,
		Total:   len(responses),
	}
}
